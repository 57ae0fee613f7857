package handlers

import (
	"context"
	"strconv"

	"github.com/mr-linch/go-tg"
	"github.com/mr-linch/go-tg/tgb"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/telegram-persona-bot/internal/history"
)

// HasText matches message updates carrying text.
var HasText = tgb.FilterFunc(func(_ context.Context, update *tgb.Update) (bool, error) {
	return update.Message != nil && update.Message.Text != "", nil
})

// Chat feeds every text message into the responder.
func Chat(r *Responder) func(ctx context.Context, msg *tgb.MessageUpdate) error {
	return func(ctx context.Context, msg *tgb.MessageUpdate) error {
		return r.Handle(ctx, IncomingFrom(msg.Message))
	}
}

// Errors logs handler failures; the poller carries on with the next update.
func Errors(logger log.FieldLogger) func(ctx context.Context, update *tgb.Update, err error) error {
	return func(_ context.Context, update *tgb.Update, err error) error {
		logger.WithError(err).WithField("update_id", update.ID).Errorln("update handler failed")
		return nil
	}
}

func IncomingFrom(msg *tg.Message) Incoming {
	in := Incoming{
		ChatID:    int64(msg.Chat.ID),
		MessageID: msg.ID,
		Text:      msg.Text,
		Private:   msg.Chat.Type == tg.ChatTypePrivate,
		Sender:    msg.Chat.Title,
	}
	if msg.From != nil {
		in.Sender = history.FullName(
			msg.From.FirstName,
			msg.From.LastName,
			string(msg.From.Username),
			strconv.FormatInt(int64(msg.From.ID), 10),
		)
		in.Language = msg.From.LanguageCode
	}
	if reply := msg.ReplyToMessage; reply != nil && reply.From != nil {
		in.ReplyToUserID = int64(reply.From.ID)
	}
	return in
}
