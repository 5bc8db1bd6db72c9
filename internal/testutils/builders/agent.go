// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

// AgentBuilder provides a fluent interface for building test agents
type AgentBuilder struct {
	agent *deltagreen.Agent
}

// NewAgentBuilder starts from an agent with every statistic at 10,
// sanity 50 and no skills.
func NewAgentBuilder() *AgentBuilder {
	stats := make(map[string]deltagreen.Statistic, len(deltagreen.Statistics))
	for _, key := range deltagreen.Statistics {
		stats[key] = deltagreen.Statistic{Value: 10}
	}
	return &AgentBuilder{
		agent: &deltagreen.Agent{
			ID:          "agent-test-123",
			PlayerID:    "player-test-123",
			Name:        "Agent Test",
			Statistics:  stats,
			Skills:      make(map[string]deltagreen.Skill),
			TypedSkills: make(map[string]deltagreen.TypedSkill),
			Sanity:      deltagreen.Sanity{Value: 50, CurrentBreakingPoint: 40},
		},
	}
}

// WithID sets the agent ID
func (b *AgentBuilder) WithID(id string) *AgentBuilder {
	b.agent.ID = id
	return b
}

// WithPlayerID sets the player ID
func (b *AgentBuilder) WithPlayerID(playerID string) *AgentBuilder {
	b.agent.PlayerID = playerID
	return b
}

// WithStat sets a statistic value
func (b *AgentBuilder) WithStat(key string, value int) *AgentBuilder {
	b.agent.Statistics[key] = deltagreen.Statistic{Value: value}
	return b
}

// WithSkill sets a base skill proficiency
func (b *AgentBuilder) WithSkill(key string, proficiency int) *AgentBuilder {
	b.agent.Skills[key] = deltagreen.Skill{Proficiency: proficiency}
	return b
}

// WithFailedSkill sets a base skill already marked as failed
func (b *AgentBuilder) WithFailedSkill(key string, proficiency int) *AgentBuilder {
	b.agent.Skills[key] = deltagreen.Skill{Proficiency: proficiency, Failure: true}
	return b
}

// WithTypedSkill adds a typed skill
func (b *AgentBuilder) WithTypedSkill(key, group, label string, proficiency int) *AgentBuilder {
	b.agent.TypedSkills[key] = deltagreen.TypedSkill{Group: group, Label: label, Proficiency: proficiency}
	return b
}

// WithSanity sets sanity and the loss pair
func (b *AgentBuilder) WithSanity(value int, successLoss, failedLoss string) *AgentBuilder {
	b.agent.Sanity.Value = value
	b.agent.Sanity.SuccessLoss = successLoss
	b.agent.Sanity.FailedLoss = failedLoss
	return b
}

// WithWeapon appends a weapon
func (b *AgentBuilder) WithWeapon(w deltagreen.Weapon) *AgentBuilder {
	b.agent.Weapons = append(b.agent.Weapons, w)
	return b
}

// Build returns the agent
func (b *AgentBuilder) Build() *deltagreen.Agent {
	return b.agent
}
