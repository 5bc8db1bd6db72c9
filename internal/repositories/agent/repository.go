// Package agent persists agent sheets
package agent

//go:generate mockgen -destination=mock/mock_repository.go -package=agentmock github.com/KirkDiggler/deltagreen-api/internal/repositories/agent Repository

import (
	"context"

	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

// Repository defines the interface for agent persistence
type Repository interface {
	// Create stores a new agent
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an agent with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an agent by ID
	// Returns errors.NotFound if the agent doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing agent
	// Returns errors.NotFound if the agent doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an agent by ID
	// Returns errors.NotFound if the agent doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID returns every agent owned by a player, ordered by ID
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// CreateInput defines the input for creating an agent
type CreateInput struct {
	Agent *deltagreen.Agent
}

// CreateOutput defines the output for creating an agent
type CreateOutput struct {
	Agent *deltagreen.Agent
}

// GetInput defines the input for getting an agent
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an agent
type GetOutput struct {
	Agent *deltagreen.Agent
}

// UpdateInput defines the input for updating an agent
type UpdateInput struct {
	Agent *deltagreen.Agent
}

// UpdateOutput defines the output for updating an agent
type UpdateOutput struct {
	Agent *deltagreen.Agent
}

// DeleteInput defines the input for deleting an agent
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an agent
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing a player's agents
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing a player's agents
type ListByPlayerIDOutput struct {
	Agents []*deltagreen.Agent
}

const (
	errAgentNil      = "agent cannot be nil"
	errAgentIDEmpty  = "agent ID cannot be empty"
	errPlayerIDEmpty = "player ID cannot be empty"
)
