// Package engage decides when the bot joins a conversation and which bits of
// flavor (reactions, stickers, threaded replies) it adds.
package engage

import (
	"errors"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	randomReplyOdds = 20 // 1 in 20 group messages get an unprompted reply
	reactionOdds    = 10
	stickerOdds     = 9
	threadedOdds    = 15 // 14 in 15 paragraphs are sent as replies
)

// Reactions is the fixed emoji set for message reactions.
var Reactions = []string{"❤", "💔", "👍", "🤗"}

var ErrNoStickers = errors.New("sticker roll hit but no stickers are configured")

// Source yields a uniform integer in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.Intn(n) }

// DefaultSource is backed by the process-wide math/rand generator and is
// safe for concurrent use.
var DefaultSource Source = globalSource{}

// Message is the part of an incoming update the policy looks at.
type Message struct {
	Text          string
	Private       bool
	ReplyToUserID int64 // sender of the replied-to message, 0 when none
}

type Policy struct {
	BotID    int64
	Names    []string
	Stickers []string
	Source   Source
}

// ShouldReply is true when the message replies to the bot, comes from a
// private chat, wins the random roll, or mentions a trigger name. The roll is
// only drawn when the first two conditions are false.
func (p Policy) ShouldReply(msg Message) bool {
	switch {
	case msg.ReplyToUserID != 0 && msg.ReplyToUserID == p.BotID:
		return true
	case msg.Private:
		return true
	case p.roll(randomReplyOdds):
		return true
	}
	return MentionsName(msg.Text, p.Names)
}

// Reaction picks an emoji with probability 1/10.
func (p Policy) Reaction() (string, bool) {
	if !p.roll(reactionOdds) {
		return "", false
	}
	return Reactions[p.source().IntN(len(Reactions))], true
}

// Sticker picks a configured sticker with probability 1/9. A hit with an
// empty sticker list is reported as ErrNoStickers.
func (p Policy) Sticker() (string, bool, error) {
	if !p.roll(stickerOdds) {
		return "", false, nil
	}
	if len(p.Stickers) == 0 {
		return "", false, ErrNoStickers
	}
	return p.Stickers[p.source().IntN(len(p.Stickers))], true, nil
}

// Threaded reports whether a paragraph goes out as a reply to the triggering
// message rather than as a plain message.
func (p Policy) Threaded() bool {
	return p.source().IntN(threadedOdds) != 0
}

func (p Policy) roll(odds int) bool {
	return p.source().IntN(odds) == 0
}

func (p Policy) source() Source {
	if p.Source == nil {
		return DefaultSource
	}
	return p.Source
}

// MentionsName matches case-insensitively a trigger name that starts the
// text or follows a space. Any other preceding character, punctuation
// included, prevents the match. A name that starts the text must not run
// into a following letter or digit, so "gptx" alone does not mention "gpt";
// after a space the substring rule is literal and "hey gptx" does.
func MentionsName(text string, names []string) bool {
	lower := strings.ToLower(text)
	for _, name := range names {
		name = strings.ToLower(name)
		if name == "" {
			continue
		}
		if strings.HasPrefix(lower, name) && endsWord(lower, len(name)) {
			return true
		}
		if strings.Contains(lower, " "+name) {
			return true
		}
	}
	return false
}

func endsWord(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
