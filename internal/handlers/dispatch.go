package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iamwavecut/telegram-persona-bot/internal/engage"
	"github.com/iamwavecut/telegram-persona-bot/internal/html"
)

const paragraphSeparator = "\n\n"

// SplitParagraphs cuts a reply on blank lines and drops empty pieces.
func SplitParagraphs(text string) []string {
	var parts []string
	for _, part := range strings.Split(text, paragraphSeparator) {
		part = strings.Trim(part, "\r\n")
		if strings.TrimSpace(part) == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// Dispatcher delivers one completion to a chat: maybe a sticker first, then
// every paragraph as its own message, at least Pause apart.
type Dispatcher struct {
	Out    Outbound
	Policy engage.Policy
	Pause  time.Duration
}

func (d Dispatcher) Dispatch(ctx context.Context, chatID int64, replyTo int, text string) error {
	sticker, ok, err := d.Policy.Sticker()
	if err != nil {
		return err
	}
	if ok {
		if err := d.Out.SendSticker(ctx, chatID, sticker); err != nil {
			return fmt.Errorf("send sticker: %w", err)
		}
	}

	pacer := rate.NewLimiter(rate.Every(d.Pause), 1)
	for _, part := range SplitParagraphs(text) {
		safe, err := html.Sanitize(part, html.TelegramTags)
		if err != nil {
			return fmt.Errorf("sanitize paragraph: %w", err)
		}
		if strings.TrimSpace(safe) == "" {
			continue
		}
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		target := 0
		if d.Policy.Threaded() {
			target = replyTo
		}
		if err := d.Out.SendText(ctx, chatID, safe, target); err != nil {
			return fmt.Errorf("send paragraph: %w", err)
		}
	}
	return nil
}
