package handlers

import (
	"context"

	"github.com/mr-linch/go-tg"
)

// Outbound is everything the bot says back to a chat.
type Outbound interface {
	// SendText sends HTML text; replyTo of 0 sends a plain message.
	SendText(ctx context.Context, chatID int64, text string, replyTo int) error
	SendTyping(ctx context.Context, chatID int64) error
	SendSticker(ctx context.Context, chatID int64, fileID string) error
	React(ctx context.Context, chatID int64, messageID int, emoji string) error
}

// Telegram implements Outbound with the Bot API client.
type Telegram struct {
	Client *tg.Client
}

func (t Telegram) SendText(ctx context.Context, chatID int64, text string, replyTo int) error {
	call := t.Client.SendMessage(tg.ChatID(chatID), text).ParseMode(tg.HTML)
	if replyTo != 0 {
		call = call.ReplyParameters(tg.ReplyParameters{
			MessageID: replyTo,

			AllowSendingWithoutReply: true,
		})
	}
	return call.DoVoid(ctx)
}

func (t Telegram) SendTyping(ctx context.Context, chatID int64) error {
	return t.Client.SendChatAction(tg.ChatID(chatID), tg.ChatActionTyping).DoVoid(ctx)
}

func (t Telegram) SendSticker(ctx context.Context, chatID int64, fileID string) error {
	return t.Client.SendSticker(tg.ChatID(chatID), tg.NewFileArgID(tg.FileID(fileID))).DoVoid(ctx)
}

func (t Telegram) React(ctx context.Context, chatID int64, messageID int, emoji string) error {
	return t.Client.SetMessageReaction(tg.ChatID(chatID), messageID).
		Reaction([]tg.ReactionType{
			{Emoji: &tg.ReactionTypeEmoji{Type: "emoji", Emoji: emoji}},
		}).
		DoVoid(ctx)
}
