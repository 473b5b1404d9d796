// Package handler turns routed updates into exactly one outbound response.
package handler

import (
	"context"

	"tzbot/pkg/response"
)

// Outbound delivers a response to a chat. Rendering to text happens there.
type Outbound interface {
	Deliver(ctx context.Context, chatID int64, r response.Response) error
}
