package main

import (
	"context"
	"os"

	"tzbot/config"
	"tzbot/pkg/logger"
	"tzbot/storage/backend"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	ctx := context.Background()

	stg, err := backend.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("Failed to open storage", logger.Error(err))
		os.Exit(1)
	}
	defer stg.Close()

	total, err := stg.User().GetTotalUsers(ctx)
	if err != nil {
		log.Error("Failed to count users", logger.Error(err))
		return
	}

	if err := stg.Reset(ctx); err != nil {
		log.Error("Failed to truncate users", logger.Error(err))
		return
	}
	log.Info("Successfully truncated users table.", logger.Int("removed", total))
}
