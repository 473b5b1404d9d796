// Package router classifies inbound updates and hands each one to exactly
// one handler.
package router

import (
	"context"

	"github.com/google/uuid"

	"tzbot/pkg/logger"
	"tzbot/pkg/metrics"
	"tzbot/pkg/models"
)

type RouteKind int

const (
	RouteCommand RouteKind = iota + 1
	RouteIgnore
	RouteLocation
	RouteFallback
)

func (k RouteKind) String() string {
	switch k {
	case RouteCommand:
		return "command"
	case RouteIgnore:
		return "ignore"
	case RouteLocation:
		return "location"
	case RouteFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Route is the classification of one update. Command is set only for RouteCommand.
type Route struct {
	Kind    RouteKind
	Command models.CommandKind
}

// Classify checks, in order: known command, non-private chat, location.
func Classify(u models.Update) Route {
	if kind, ok := models.ParseCommand(u.Text); ok {
		return Route{Kind: RouteCommand, Command: kind}
	}
	if !u.Chat.Private {
		return Route{Kind: RouteIgnore}
	}
	if u.Location != nil {
		return Route{Kind: RouteLocation}
	}
	return Route{Kind: RouteFallback}
}

type CommandHandler interface {
	Handle(ctx context.Context, kind models.CommandKind, chat models.Chat) error
}

type MessageHandler interface {
	HandleLocation(ctx context.Context, chat models.Chat, sender *models.Sender, loc models.Location) error
	HandleFallback(ctx context.Context, chat models.Chat) error
}

type routeFunc func(ctx context.Context, route Route, u models.Update) error

type Router struct {
	table map[RouteKind]routeFunc
	log   logger.ILogger
}

func New(commands CommandHandler, messages MessageHandler, log logger.ILogger) *Router {
	return &Router{
		log: log,
		table: map[RouteKind]routeFunc{
			RouteCommand: func(ctx context.Context, r Route, u models.Update) error {
				return commands.Handle(ctx, r.Command, u.Chat)
			},
			RouteIgnore: func(context.Context, Route, models.Update) error {
				return nil
			},
			RouteLocation: func(ctx context.Context, _ Route, u models.Update) error {
				return messages.HandleLocation(ctx, u.Chat, u.Sender, *u.Location)
			},
			RouteFallback: func(ctx context.Context, _ Route, u models.Update) error {
				return messages.HandleFallback(ctx, u.Chat)
			},
		},
	}
}

// Dispatch runs the single handler selected by Classify and returns its error.
func (r *Router) Dispatch(ctx context.Context, u models.Update) error {
	route := Classify(u)
	traceID := uuid.New().String()[:8]

	r.log.Debug("dispatching update",
		logger.String("trace_id", traceID),
		logger.Int("update_id", u.ID),
		logger.Int64("chat_id", u.Chat.ID),
		logger.String("route", route.Kind.String()),
	)
	metrics.UpdatesRouted.WithLabelValues(route.Kind.String()).Inc()

	if err := r.table[route.Kind](ctx, route, u); err != nil {
		r.log.Warning("update handling failed",
			logger.String("trace_id", traceID),
			logger.Int("update_id", u.ID),
			logger.Error(err),
		)
		return err
	}
	return nil
}
