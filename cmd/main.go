package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"tzbot/config"
	"tzbot/pkg/bot"
	"tzbot/pkg/handler"
	"tzbot/pkg/logger"
	"tzbot/pkg/router"
	"tzbot/pkg/tz"
	"tzbot/service"
	"tzbot/storage/backend"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Storage (Postgres or SQLite, picked from DATABASE_URL)
	stg, err := backend.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("Failed to open storage", logger.Error(err))
		os.Exit(1)
	}
	defer stg.Close()

	// 4. Load the timezone index once; it is shared read-only by all handlers
	finder, err := tz.New()
	if err != nil {
		log.Error("Failed to load timezone index", logger.Error(err))
		os.Exit(1)
	}

	// 5. Initialize Bot and wire handlers
	tgBot, err := bot.New(&cfg, log)
	if err != nil {
		log.Error("Failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(stg, log)
	r := router.New(
		handler.NewCommandHandler(tgBot),
		handler.NewMessageHandler(svc.User(), finder, tgBot, log),
		log,
	)

	log.Info("🚀 Timezone bot is starting...")

	// 6. Run bot and ops server until a shutdown signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgBot.Run(gctx, r)
	})
	g.Go(func() error {
		return bot.RunServer(gctx, cfg.AppPort, stg, log)
	})

	if err := g.Wait(); err != nil {
		log.Error("Shutting down after error", logger.Error(err))
		stop()
		os.Exit(1)
	}

	log.Info("Stopped.")
}
