package rolllog

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
)

type memoryLog struct {
	messages  []*chat.Message
	expiresAt time.Time
}

// InMemoryRepository is a Repository for the CLI and tests. Expiry is
// checked against the clock on every read.
type InMemoryRepository struct {
	mu         sync.Mutex
	logs       map[string]*memoryLog
	clock      clock.Clock
	ttl        time.Duration
	maxEntries int
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates an empty log. Zero values use the defaults.
func NewInMemory(c clock.Clock, ttl time.Duration, maxEntries int) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &InMemoryRepository{
		logs:       make(map[string]*memoryLog),
		clock:      c,
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Append adds a message and refreshes the expiry
func (r *InMemoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateKey(input.AgentID, input.Channel); err != nil {
		return nil, err
	}
	if input.Message == nil {
		return nil, errors.InvalidArgument(errMessageNil)
	}
	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := buildKey(input.AgentID, input.Channel)
	log := r.live(key)
	if log == nil {
		log = &memoryLog{}
		r.logs[key] = log
	}

	msg := *input.Message
	log.messages = append(log.messages, &msg)
	if over := len(log.messages) - r.maxEntries; over > 0 {
		log.messages = log.messages[over:]
	}
	log.expiresAt = r.clock.Now().Add(ttl)

	return &AppendOutput{Length: int64(len(log.messages))}, nil
}

// Get returns copies of the newest messages
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.AgentID, input.Channel); err != nil {
		return nil, err
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.live(buildKey(input.AgentID, input.Channel))
	if log == nil {
		return &GetOutput{Messages: []*chat.Message{}}, nil
	}

	kept := log.messages
	if input.Limit > 0 && len(kept) > input.Limit {
		kept = kept[len(kept)-input.Limit:]
	}
	out := make([]*chat.Message, len(kept))
	for i, m := range kept {
		c := *m
		out[i] = &c
	}
	return &GetOutput{Messages: out}, nil
}

// Delete clears a log
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.AgentID, input.Channel); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := buildKey(input.AgentID, input.Channel)
	var n int64
	if log := r.live(key); log != nil {
		n = int64(len(log.messages))
	}
	delete(r.logs, key)
	return &DeleteOutput{MessagesDeleted: n}, nil
}

// live returns the log at key, dropping it if it has expired
func (r *InMemoryRepository) live(key string) *memoryLog {
	log, ok := r.logs[key]
	if !ok {
		return nil
	}
	if !r.clock.Now().Before(log.expiresAt) {
		delete(r.logs, key)
		return nil
	}
	return log
}
