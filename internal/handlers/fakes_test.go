package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/iamwavecut/telegram-persona-bot/internal/history"
)

type sent struct {
	kind    string // text, sticker, reaction; failOn also takes typing
	chatID  int64
	text    string
	replyTo int
	at      time.Time
}

type fakeOutbound struct {
	mu      sync.Mutex
	sent    []sent
	typing  int
	failOn  string
	failErr error
}

func (f *fakeOutbound) record(s sent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn == s.kind {
		return f.failErr
	}
	s.at = time.Now()
	f.sent = append(f.sent, s)
	return nil
}

func (f *fakeOutbound) SendText(_ context.Context, chatID int64, text string, replyTo int) error {
	return f.record(sent{kind: "text", chatID: chatID, text: text, replyTo: replyTo})
}

func (f *fakeOutbound) SendTyping(context.Context, int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing++
	if f.failOn == "typing" {
		return f.failErr
	}
	return nil
}

func (f *fakeOutbound) SendSticker(_ context.Context, chatID int64, fileID string) error {
	return f.record(sent{kind: "sticker", chatID: chatID, text: fileID})
}

func (f *fakeOutbound) React(_ context.Context, chatID int64, messageID int, emoji string) error {
	return f.record(sent{kind: "reaction", chatID: chatID, text: emoji, replyTo: messageID})
}

func (f *fakeOutbound) all() []sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sent(nil), f.sent...)
}

func (f *fakeOutbound) texts() []string {
	var out []string
	for _, s := range f.all() {
		if s.kind == "text" {
			out = append(out, s.text)
		}
	}
	return out
}

func (f *fakeOutbound) typingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.typing
}

type fakeCompleter struct {
	reply string
	err   error
	seen  [][]history.Turn
}

func (f *fakeCompleter) Complete(_ context.Context, turns []history.Turn) (string, error) {
	f.seen = append(f.seen, turns)
	return f.reply, f.err
}

// sourceFunc answers IntN by the requested bound: 10 reaction, 20 random
// reply, 9 sticker, 15 threaded paragraph, anything else a pick.
type sourceFunc func(n int) int

func (f sourceFunc) IntN(n int) int { return f(n) }

// quiet never reacts, never replies at random, never sends stickers and
// always threads paragraphs.
func quiet(n int) int { return n - 1 }
