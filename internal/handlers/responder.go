package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iamwavecut/tool"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/telegram-persona-bot/internal/completion"
	"github.com/iamwavecut/telegram-persona-bot/internal/engage"
	"github.com/iamwavecut/telegram-persona-bot/internal/history"
	"github.com/iamwavecut/telegram-persona-bot/internal/i18n"
	"github.com/iamwavecut/telegram-persona-bot/resources/consts"
)

// Incoming is a text message as the pipeline sees it.
type Incoming struct {
	ChatID        int64
	MessageID     int
	Sender        string
	Text          string
	Private       bool
	ReplyToUserID int64
	Language      string
}

type Completer interface {
	Complete(ctx context.Context, turns []history.Turn) (string, error)
}

// Responder runs the whole pipeline for one incoming message: record it,
// maybe react, decide, complete and dispatch.
type Responder struct {
	Transcript *history.Transcript
	Completer  Completer
	Out        Outbound
	Policy     engage.Policy

	Pause           time.Duration
	TypingInterval  time.Duration
	DefaultLanguage string
	Logger          log.FieldLogger
}

func (r *Responder) Handle(ctx context.Context, in Incoming) error {
	logger := r.logger().WithFields(log.Fields{
		"chat_id":    in.ChatID,
		"message_id": in.MessageID,
	})

	r.Transcript.Append(history.Turn{
		Role:    history.RoleUser,
		Content: in.Sender + ": " + in.Text,
		Name:    history.SpeakerName(in.Sender),
	})

	if emoji, ok := r.Policy.Reaction(); ok {
		if err := r.Out.React(ctx, in.ChatID, in.MessageID, emoji); err != nil {
			logger.WithError(err).Warnln("cant react to message")
		}
	}

	if !r.Policy.ShouldReply(engage.Message{
		Text:          in.Text,
		Private:       in.Private,
		ReplyToUserID: in.ReplyToUserID,
	}) {
		logger.Traceln("not replying")
		return nil
	}

	logger = logger.WithField("exchange", uuid.NewString())
	turns := r.Transcript.Snapshot()
	reply, err := r.complete(ctx, logger, in.ChatID, turns)
	if err != nil {
		return r.fail(ctx, logger, in, err)
	}
	r.Transcript.Append(history.Turn{Role: history.RoleAssistant, Content: reply})

	if tokens, err := history.CountTokens(turns); err == nil {
		logger.WithFields(log.Fields{"turns": len(turns) + 1, "tokens": tokens}).Debugln("completion received")
	}

	dispatcher := Dispatcher{Out: r.Out, Policy: r.Policy, Pause: r.Pause}
	return dispatcher.Dispatch(ctx, in.ChatID, in.MessageID, reply)
}

// complete shows the typing indicator for as long as the request runs.
func (r *Responder) complete(ctx context.Context, logger log.FieldLogger, chatID int64, turns []history.Turn) (string, error) {
	r.typing(ctx, logger, chatID)

	typingCtx, stopTyping := context.WithCancel(ctx)
	defer stopTyping()
	go r.keepTyping(typingCtx, logger, chatID)

	return r.Completer.Complete(ctx, turns)
}

func (r *Responder) keepTyping(ctx context.Context, logger log.FieldLogger, chatID int64) {
	interval := r.TypingInterval
	if interval <= 0 {
		interval = consts.DurationTyping
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.typing(ctx, logger, chatID)
		}
	}
}

func (r *Responder) typing(ctx context.Context, logger log.FieldLogger, chatID int64) {
	if err := r.Out.SendTyping(ctx, chatID); tool.Try(err) {
		logger.WithError(err).Debugln("cant send typing")
	}
}

// fail answers transient and malformed completion failures with a short
// apology and stays silent on auth and request errors. The error is returned
// either way; nothing is added to the transcript.
func (r *Responder) fail(ctx context.Context, logger log.FieldLogger, in Incoming, err error) error {
	lang := tool.NonZero(in.Language, r.DefaultLanguage)

	var fallback string
	switch completion.KindOf(err) {
	case completion.KindNetwork:
		fallback = i18n.Get(consts.StrRequestError, lang)
	case completion.KindMalformed:
		fallback = i18n.Get(consts.StrNoAnswer, lang)
	}
	if fallback != "" {
		if sendErr := r.Out.SendText(ctx, in.ChatID, fallback, in.MessageID); sendErr != nil {
			logger.WithError(sendErr).Warnln("cant send fallback reply")
		}
	}
	return fmt.Errorf("complete reply: %w", err)
}

func (r *Responder) logger() log.FieldLogger {
	if r.Logger == nil {
		return log.StandardLogger()
	}
	return r.Logger
}
