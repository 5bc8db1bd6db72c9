package rolllog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	redisclient "github.com/KirkDiggler/deltagreen-api/internal/redis"
)

// Key pattern: roll_log:{agent_id}:{channel}
const keyPrefix = "roll_log:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client     redisclient.Client
	TTL        time.Duration
	MaxEntries int64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "cannot be negative")
	}
	if c.MaxEntries < 0 {
		vb.InvalidField("MaxEntries", "cannot be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	ttl        time.Duration
	maxEntries int64
}

var _ Repository = (*redisRepository)(nil)

// NewRedisRepository creates a list-backed roll log
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}

	return &redisRepository{client: cfg.Client, ttl: ttl, maxEntries: maxEntries}, nil
}

func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
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

	data, err := json.Marshal(input.Message)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal message")
	}

	key := buildKey(input.AgentID, input.Channel)
	pipe := r.client.TxPipeline()
	push := pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -r.maxEntries, -1)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to append to roll log")
	}

	length := push.Val()
	if length > r.maxEntries {
		length = r.maxEntries
	}
	return &AppendOutput{Length: length}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.AgentID, input.Channel); err != nil {
		return nil, err
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	start := int64(0)
	if input.Limit > 0 {
		start = -int64(input.Limit)
	}

	raw, err := r.client.LRange(ctx, buildKey(input.AgentID, input.Channel), start, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roll log")
	}

	messages := make([]*chat.Message, 0, len(raw))
	for _, item := range raw {
		var msg chat.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal message")
		}
		messages = append(messages, &msg)
	}
	return &GetOutput{Messages: messages}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.AgentID, input.Channel); err != nil {
		return nil, err
	}

	key := buildKey(input.AgentID, input.Channel)
	pipe := r.client.TxPipeline()
	length := pipe.LLen(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete roll log")
	}

	return &DeleteOutput{MessagesDeleted: length.Val()}, nil
}

func buildKey(agentID, channel string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, agentID, channel)
}
