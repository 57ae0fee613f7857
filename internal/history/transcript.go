// Package history keeps the conversation transcript sent to the completion
// endpoint as context.
package history

import (
	"sync"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role
	Content string
	// Name is an optional ASCII speaker tag, see SpeakerName.
	Name string
}

// Transcript is a single append-only sequence of turns shared by every chat
// the bot serves. Turns from concurrent updates interleave in arrival order.
// It is never trimmed.
type Transcript struct {
	mu    sync.Mutex
	turns []Turn
}

// New seeds the transcript with the persona prompt as its only system turn.
func New(persona string) *Transcript {
	return &Transcript{
		turns: []Turn{{Role: RoleSystem, Content: persona}},
	}
}

func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
}

// Snapshot returns a copy safe to use after the lock is released.
func (t *Transcript) Snapshot() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
