package agent

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
)

// InMemoryRepository keeps agents in a map. Values are stored as JSON so
// callers never share a sheet with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
	clock clock.Clock
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates an empty in-memory repository. A nil clock uses
// the real one.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{store: make(map[string][]byte), clock: c}
}

// Create stores a new agent
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Agent == nil {
		return nil, errors.InvalidArgument(errAgentNil)
	}
	if input.Agent.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Agent.ID]; exists {
		return nil, errors.AlreadyExistsf("agent with ID %s already exists", input.Agent.ID)
	}

	now := r.clock.Now().Unix()
	input.Agent.CreatedAt = now
	input.Agent.UpdatedAt = now
	if err := r.put(input.Agent); err != nil {
		return nil, err
	}
	return &CreateOutput{Agent: input.Agent}, nil
}

// Get returns a copy of the stored agent
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, err := r.get(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Agent: a}, nil
}

// Update replaces an existing agent
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Agent == nil {
		return nil, errors.InvalidArgument(errAgentNil)
	}
	if input.Agent.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.get(input.Agent.ID)
	if err != nil {
		return nil, err
	}
	input.Agent.CreatedAt = existing.CreatedAt
	input.Agent.UpdatedAt = r.clock.Now().Unix()
	if err := r.put(input.Agent); err != nil {
		return nil, err
	}
	return &UpdateOutput{Agent: input.Agent}, nil
}

// Delete removes an agent
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAgentIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("agent with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}

// ListByPlayerID scans every stored agent
func (r *InMemoryRepository) ListByPlayerID(_ context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var agents []*deltagreen.Agent
	for _, id := range ids {
		a, err := r.get(id)
		if err != nil {
			return nil, err
		}
		if a.PlayerID == input.PlayerID {
			agents = append(agents, a)
		}
	}
	return &ListByPlayerIDOutput{Agents: agents}, nil
}

func (r *InMemoryRepository) put(a *deltagreen.Agent) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal agent")
	}
	r.store[a.ID] = data
	return nil
}

func (r *InMemoryRepository) get(id string) (*deltagreen.Agent, error) {
	data, exists := r.store[id]
	if !exists {
		return nil, errors.NotFoundf("agent with ID %s not found", id)
	}
	var a deltagreen.Agent
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal agent")
	}
	a.Normalize()
	return &a, nil
}
