package rpgtoolkit

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

func TestNewCheckResolvedEvent(t *testing.T) {
	agent := &deltagreen.Agent{ID: "agent-1"}
	weapon := &deltagreen.Weapon{ID: "weapon-1"}

	event := NewCheckResolvedEvent(agent, weapon, "roll_1")

	assert.Equal(t, EventCheckResolved, event.Type())
	assert.Equal(t, "agent-1", event.Source().GetID())
	assert.Equal(t, EntityTypeAgent, event.Source().GetType())
	assert.Equal(t, "weapon-1", event.Target().GetID())
	assert.Equal(t, "roll_1", event.RollID)
	assert.Equal(t, "agent-1", event.AgentID)
}

func TestCheckResolvedEventOnBus(t *testing.T) {
	bus := events.NewBus()

	var received *CheckResolvedEvent
	bus.SubscribeFunc(EventCheckResolved, 0, func(_ context.Context, e events.Event) error {
		received, _ = e.(*CheckResolvedEvent)
		return nil
	})

	event := NewCheckResolvedEvent(&deltagreen.Agent{ID: "agent-1"}, nil, "roll_2")
	event.Outcome = checks.OutcomeFailure
	event.SideEffects = []checks.SideEffect{{Kind: checks.SideEffectMarkSkillFailed, AgentID: "agent-1", SkillKey: "firearms"}}

	require.NoError(t, bus.Publish(context.Background(), event))
	require.NotNil(t, received)
	assert.Equal(t, "roll_2", received.RollID)
	assert.Equal(t, checks.OutcomeFailure, received.Outcome)
	assert.Len(t, received.SideEffects, 1)
}
