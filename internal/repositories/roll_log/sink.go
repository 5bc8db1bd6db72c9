package rolllog

import (
	"context"
	"time"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Sink records every chat message in the log channel its visibility
// maps to.
type Sink struct {
	repo Repository
	ttl  time.Duration
}

var _ chat.Sink = (*Sink)(nil)

// NewSink wraps repo. A zero ttl uses the repository default.
func NewSink(repo Repository, ttl time.Duration) *Sink {
	return &Sink{repo: repo, ttl: ttl}
}

// Send appends msg
func (s *Sink) Send(ctx context.Context, msg *chat.Message) error {
	if msg == nil {
		return errors.InvalidArgument(errMessageNil)
	}
	_, err := s.repo.Append(ctx, AppendInput{
		AgentID: msg.AgentID,
		Channel: msg.Visibility.Channel(),
		Message: msg,
		TTL:     s.ttl,
	})
	return err
}
