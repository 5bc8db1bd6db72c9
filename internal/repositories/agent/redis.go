package agent

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/deltagreen-api/internal/redis"
)

const (
	agentKeyPrefix    = "agent:"
	playerIndexPrefix = "agent:player:"
)

// RedisConfig contains configuration for the Redis agent repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	logger *zap.Logger
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a Redis-backed agent repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisRepository{client: cfg.Client, clock: c, logger: logger}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Agent == nil {
		return nil, errors.InvalidArgument(errAgentNil)
	}
	if input.Agent.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	key := agentKeyPrefix + input.Agent.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("agent with ID %s already exists", input.Agent.ID)
	}

	now := r.clock.Now().Unix()
	input.Agent.CreatedAt = now
	input.Agent.UpdatedAt = now

	data, err := json.Marshal(input.Agent)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal agent")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if input.Agent.PlayerID != "" {
		pipe.SAdd(ctx, playerIndexPrefix+input.Agent.PlayerID, input.Agent.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create agent")
	}

	return &CreateOutput{Agent: input.Agent}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	a, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Agent: a}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*deltagreen.Agent, error) {
	result, err := r.client.Get(ctx, agentKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("agent with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get agent")
	}

	var a deltagreen.Agent
	if err := json.Unmarshal([]byte(result), &a); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal agent")
	}
	a.Normalize()
	return &a, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Agent == nil {
		return nil, errors.InvalidArgument(errAgentNil)
	}
	if input.Agent.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	existing, err := r.load(ctx, input.Agent.ID)
	if err != nil {
		return nil, err
	}

	input.Agent.CreatedAt = existing.CreatedAt
	input.Agent.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(input.Agent)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal agent")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, agentKeyPrefix+input.Agent.ID, data, 0)
	if existing.PlayerID != input.Agent.PlayerID {
		if existing.PlayerID != "" {
			pipe.SRem(ctx, playerIndexPrefix+existing.PlayerID, input.Agent.ID)
		}
		if input.Agent.PlayerID != "" {
			pipe.SAdd(ctx, playerIndexPrefix+input.Agent.PlayerID, input.Agent.ID)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update agent")
	}

	return &UpdateOutput{Agent: input.Agent}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, agentKeyPrefix+input.ID)
	if existing.PlayerID != "" {
		pipe.SRem(ctx, playerIndexPrefix+existing.PlayerID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete agent")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}
	sort.Strings(ids)

	agents := make([]*deltagreen.Agent, 0, len(ids))
	for _, id := range ids {
		a, err := r.load(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				r.logger.Warn("agent missing from store, cleaning up index",
					zap.String("agent_id", id),
					zap.String("index_key", indexKey))
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, err
		}
		agents = append(agents, a)
	}

	r.logger.Debug("listed agents by player",
		zap.String("player_id", input.PlayerID),
		zap.Int("count", len(agents)))

	return &ListByPlayerIDOutput{Agents: agents}, nil
}
