package rpgtoolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

func TestAgentEntity(t *testing.T) {
	agent := &deltagreen.Agent{ID: "agent-123", Name: "Agent Fox"}

	entity := WrapAgent(agent)

	assert.Equal(t, "agent-123", entity.GetID())
	assert.Equal(t, EntityTypeAgent, entity.GetType())
	assert.Same(t, agent, entity.Agent)
}

func TestWeaponEntity(t *testing.T) {
	t.Run("wraps a weapon", func(t *testing.T) {
		weapon := &deltagreen.Weapon{ID: "weapon-1", Name: "Glock 17"}

		entity := WrapWeapon(weapon)

		assert.Equal(t, "weapon-1", entity.GetID())
		assert.Equal(t, EntityTypeWeapon, entity.GetType())
	})

	t.Run("nil weapon is a nil entity", func(t *testing.T) {
		assert.Nil(t, WrapWeapon(nil))
	})
}
