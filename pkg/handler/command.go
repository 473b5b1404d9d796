package handler

import (
	"context"
	"fmt"

	"tzbot/pkg/models"
	"tzbot/pkg/response"
)

type CommandHandler struct {
	out Outbound
}

func NewCommandHandler(out Outbound) *CommandHandler {
	return &CommandHandler{out: out}
}

// Handle has no side effects besides delivery; delivery errors are returned as is.
func (h *CommandHandler) Handle(ctx context.Context, kind models.CommandKind, chat models.Chat) error {
	var r response.Response
	switch kind {
	case models.CommandHelp:
		r = response.CommandList{Commands: models.Commands}
	case models.CommandStart:
		r = response.Hello{}
	default:
		return fmt.Errorf("unknown command kind %d", kind)
	}
	return h.out.Deliver(ctx, chat.ID, r)
}
