// Package chat defines the messages a resolved roll produces and the
// sinks that deliver them.
package chat

//go:generate mockgen -destination=mock/mock_sink.go -package=chatmock github.com/KirkDiggler/deltagreen-api/internal/chat Sink

import (
	"context"
	"time"

	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// RollMode controls who can see a roll
type RollMode string

// Roll modes
const (
	RollModePublic RollMode = "publicroll"
	RollModeGM     RollMode = "gmroll"
	RollModeBlind  RollMode = "blindroll"
	RollModeSelf   RollMode = "selfroll"
)

// RollModes lists every mode
var RollModes = []RollMode{RollModePublic, RollModeGM, RollModeBlind, RollModeSelf}

// ParseRollMode validates a roll mode string. Empty means "use the default".
func ParseRollMode(s string) (RollMode, error) {
	if s == "" {
		return "", nil
	}
	for _, m := range RollModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown roll mode %q", s)
}

// Channel is the roll log bucket a message lands in
func (m RollMode) Channel() string {
	switch m {
	case RollModeGM, RollModeBlind:
		return ChannelGM
	case RollModeSelf:
		return ChannelSelf
	default:
		return ChannelPublic
	}
}

// Roll log channels
const (
	ChannelPublic = "public"
	ChannelGM     = "gm"
	ChannelSelf   = "self"
)

// MessageKind distinguishes roll output from bookkeeping notices
type MessageKind string

// Message kinds
const (
	MessageKindRoll        MessageKind = "roll"
	MessageKindImprovement MessageKind = "improvement"
)

// DiceSound is the audible cue attached to every dice message
const DiceSound = "sounds/dice.wav"

// Message is a formatted roll ready for display
type Message struct {
	ID         string      `json:"id"`
	AgentID    string      `json:"agent_id"`
	RollID     string      `json:"roll_id,omitempty"`
	Speaker    string      `json:"speaker"`
	Flavor     string      `json:"flavor"`
	Content    string      `json:"content"`
	Visibility RollMode    `json:"visibility"`
	Kind       MessageKind `json:"kind"`
	CheckKind  string      `json:"check_kind,omitempty"`
	Total      int         `json:"total"`
	Sound      string      `json:"sound,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Sink accepts formatted messages
type Sink interface {
	Send(ctx context.Context, msg *Message) error
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(ctx context.Context, msg *Message) error

// Send calls f
func (f SinkFunc) Send(ctx context.Context, msg *Message) error {
	return f(ctx, msg)
}

// MultiSink fans a message out to every sink, stopping at the first error
type MultiSink []Sink

// Send delivers msg to each sink in order
func (m MultiSink) Send(ctx context.Context, msg *Message) error {
	for _, s := range m {
		if err := s.Send(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
