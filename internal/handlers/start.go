package handlers

import (
	"context"

	"github.com/mr-linch/go-tg"
	"github.com/mr-linch/go-tg/tgb"
)

// Start greets with the configured text. The transcript is left alone.
func Start(greeting string) func(ctx context.Context, msg *tgb.MessageUpdate) error {
	return func(ctx context.Context, msg *tgb.MessageUpdate) error {
		return msg.Answer(greeting).ParseMode(tg.HTML).DoVoid(ctx)
	}
}
