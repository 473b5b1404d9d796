package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"tzbot/config"
	"tzbot/pkg/logger"
	"tzbot/pkg/metrics"
	"tzbot/pkg/models"
	"tzbot/pkg/response"
)

// Dispatcher handles one transport-neutral update.
type Dispatcher interface {
	Dispatch(ctx context.Context, u models.Update) error
}

// sender is the part of *tele.Bot used for delivery.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// DeliveryError is a failed outbound send. It is never retried.
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to chat %d: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type Bot struct {
	Bot *tele.Bot
	Log logger.ILogger

	out      sender
	inflight sync.WaitGroup
	timeout  time.Duration
}

// messageEndpoints are every telebot event carrying a message we answer.
var messageEndpoints = []string{
	tele.OnText,
	tele.OnLocation,
	tele.OnVenue,
	tele.OnPhoto,
	tele.OnSticker,
	tele.OnDocument,
	tele.OnAudio,
	tele.OnVoice,
	tele.OnVideo,
	tele.OnVideoNote,
	tele.OnAnimation,
	tele.OnContact,
	tele.OnPoll,
	tele.OnDice,
}

func New(cfg *config.Config, log logger.ILogger) (*Bot, error) {
	return newBot(tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
	}, cfg.ShutdownTimeout, log)
}

func newBot(pref tele.Settings, shutdownTimeout time.Duration, log logger.ILogger) (*Bot, error) {
	// Updates are fanned out to goroutines by the bot itself so that
	// in-flight work can be tracked before the poller stops.
	pref.Synchronous = true
	pref.OnError = func(err error, c tele.Context) {
		log.Error("an error has occurred in the dispatcher", logger.Error(err))
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	return &Bot{
		Bot:     b,
		Log:     log,
		out:     b,
		timeout: shutdownTimeout,
	}, nil
}

// Deliver renders r as MarkdownV2 and sends it once.
func (b *Bot) Deliver(ctx context.Context, chatID int64, r response.Response) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{ChatID: chatID, Err: err}
	}
	_, err := b.out.Send(&tele.Chat{ID: chatID}, response.Render(r), tele.ModeMarkdownV2)
	if err != nil {
		metrics.DeliveryFailures.Inc()
		b.Log.Error("failed to deliver response",
			logger.Int64("chat_id", chatID),
			logger.String("kind", response.Kind(r)),
			logger.Error(err),
		)
		return &DeliveryError{ChatID: chatID, Err: err}
	}
	return nil
}

// Run polls Telegram until ctx is done, then stops polling and waits for
// in-flight updates to finish delivering their responses.
func (b *Bot) Run(ctx context.Context, d Dispatcher) error {
	b.registerHandlers(context.WithoutCancel(ctx), d)

	if err := b.Bot.SetCommands(botCommands()); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		b.Log.Info(fmt.Sprintf("🤖 Bot @%s Started...", b.Bot.Me.Username))
		b.Bot.Start()
	}()

	<-ctx.Done()
	b.Log.Info("stopping poller")
	b.Bot.Stop()
	<-stopped

	// The poller has already confirmed these offsets, Telegram will not resend them.
	if n := b.drainPending(); n > 0 {
		b.Log.Info("dispatched updates received before stop", logger.Int("count", n))
	}

	if !b.waitInflight(b.timeout) {
		b.Log.Warning("shutdown timeout reached with updates still in flight", logger.Any("timeout", b.timeout))
	}
	return nil
}

func (b *Bot) registerHandlers(ctx context.Context, d Dispatcher) {
	for _, endpoint := range messageEndpoints {
		b.Bot.Handle(endpoint, b.handler(ctx, d))
	}
	b.Bot.Handle(tele.OnCallback, b.handleUnhandled)
	b.Bot.Handle(tele.OnQuery, b.handleUnhandled)
}

// handler runs on the poller goroutine; the actual work is spawned so that
// the inflight counter is incremented before Stop can return.
func (b *Bot) handler(ctx context.Context, d Dispatcher) tele.HandlerFunc {
	return func(c tele.Context) error {
		u, ok := toUpdate(c)
		if !ok {
			return b.handleUnhandled(c)
		}

		b.inflight.Add(1)
		go func() {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.Log.Error("panic while handling update",
						logger.Int("update_id", u.ID),
						logger.Any("panic", r),
					)
				}
			}()
			if err := d.Dispatch(ctx, u); err != nil {
				b.Log.Error("an error has occurred in the dispatcher",
					logger.Int("update_id", u.ID),
					logger.Error(err),
				)
			}
		}()
		return nil
	}
}

// drainPending processes updates still buffered after the poller stopped.
func (b *Bot) drainPending() int {
	n := 0
	for {
		select {
		case upd := <-b.Bot.Updates:
			b.Bot.ProcessUpdate(upd)
			n++
		default:
			return n
		}
	}
}

func (b *Bot) handleUnhandled(c tele.Context) error {
	b.Log.Warning("unhandled update", logger.Int("update_id", c.Update().ID))
	return nil
}

func (b *Bot) waitInflight(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func botCommands() []tele.Command {
	cmds := make([]tele.Command, 0, len(models.Commands))
	for _, c := range models.Commands {
		cmds = append(cmds, tele.Command{Text: c.Name, Description: c.Description})
	}
	return cmds
}
