package handler

import (
	"context"

	"tzbot/pkg/logger"
	"tzbot/pkg/metrics"
	"tzbot/pkg/models"
	"tzbot/pkg/response"
	"tzbot/pkg/tz"
	"tzbot/service"
)

type MessageHandler struct {
	users    service.UserService
	resolver tz.Resolver
	out      Outbound
	log      logger.ILogger
}

func NewMessageHandler(users service.UserService, resolver tz.Resolver, out Outbound, log logger.ILogger) *MessageHandler {
	return &MessageHandler{users: users, resolver: resolver, out: out, log: log}
}

// HandleLocation resolves loc and saves it for sender. A failed save is
// logged and reported to the user, never returned.
func (h *MessageHandler) HandleLocation(ctx context.Context, chat models.Chat, sender *models.Sender, loc models.Location) error {
	if sender == nil {
		h.log.Warning("location without sender", logger.Int64("chat_id", chat.ID))
		return h.out.Deliver(ctx, chat.ID, response.IncorrectRequest{})
	}

	timezone := h.resolver.Resolve(loc.Lat, loc.Lng)

	var r response.Response = response.ChosenTimezone{Timezone: timezone}
	if err := h.users.SetTimezone(ctx, *sender, timezone); err != nil {
		h.log.Error("failed to save timezone",
			logger.Int64("user_id", sender.ID),
			logger.String("timezone", timezone),
			logger.Error(err),
		)
		metrics.TimezoneSaves.WithLabelValues("failed").Inc()
		r = response.FailedSetTimezone{Timezone: timezone}
	} else {
		h.log.Info("timezone saved", logger.Int64("user_id", sender.ID), logger.String("timezone", timezone))
		metrics.TimezoneSaves.WithLabelValues("ok").Inc()
	}

	return h.out.Deliver(ctx, chat.ID, r)
}

func (h *MessageHandler) HandleFallback(ctx context.Context, chat models.Chat) error {
	return h.out.Deliver(ctx, chat.ID, response.IncorrectRequest{})
}
