// Package rolllog keeps the recent chat output of each agent, bucketed by
// visibility channel and expired after a TTL.
package rolllog

//go:generate mockgen -destination=mock/mock_repository.go -package=rolllogmock github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Defaults
const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 200
)

// Repository stores chat messages per agent and channel
type Repository interface {
	// Append adds a message to the end of the log and refreshes its TTL.
	// The oldest entries are dropped past the configured maximum.
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get returns the newest Limit messages, oldest first. A zero Limit
	// returns everything kept.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete clears a log
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// AppendInput defines the input for appending a message
type AppendInput struct {
	AgentID string
	Channel string
	Message *chat.Message

	// TTL overrides the repository default
	TTL time.Duration
}

// AppendOutput defines the output for appending a message
type AppendOutput struct {
	Length int64
}

// GetInput defines the input for reading a log
type GetInput struct {
	AgentID string
	Channel string
	Limit   int
}

// GetOutput defines the output for reading a log
type GetOutput struct {
	Messages []*chat.Message
}

// DeleteInput defines the input for clearing a log
type DeleteInput struct {
	AgentID string
	Channel string
}

// DeleteOutput defines the output for clearing a log
type DeleteOutput struct {
	MessagesDeleted int64
}

const (
	errAgentIDEmpty = "agent ID cannot be empty"
	errChannelEmpty = "channel cannot be empty"
	errMessageNil   = "message cannot be nil"
)

func validateKey(agentID, channel string) error {
	if agentID == "" {
		return errors.InvalidArgument(errAgentIDEmpty)
	}
	if channel == "" {
		return errors.InvalidArgument(errChannelEmpty)
	}
	return nil
}
