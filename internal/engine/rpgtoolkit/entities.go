package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

// Entity types reported to the event bus
const (
	EntityTypeAgent  = "agent"
	EntityTypeWeapon = "weapon"
)

// AgentEntity wraps deltagreen.Agent to implement core.Entity
type AgentEntity struct {
	*deltagreen.Agent
}

// GetID returns the agent's ID
func (a *AgentEntity) GetID() string {
	return a.ID
}

// GetType returns the entity type for rpg-toolkit
func (a *AgentEntity) GetType() string {
	return EntityTypeAgent
}

// WeaponEntity wraps deltagreen.Weapon to implement core.Entity
type WeaponEntity struct {
	*deltagreen.Weapon
}

// GetID returns the weapon's ID
func (w *WeaponEntity) GetID() string {
	return w.ID
}

// GetType returns the entity type for rpg-toolkit
func (w *WeaponEntity) GetType() string {
	return EntityTypeWeapon
}

// WrapAgent converts an agent to an AgentEntity
func WrapAgent(agent *deltagreen.Agent) *AgentEntity {
	return &AgentEntity{Agent: agent}
}

// WrapWeapon converts a weapon to a WeaponEntity. A nil weapon gives a
// nil core.Entity so events without a target stay untyped-nil.
func WrapWeapon(weapon *deltagreen.Weapon) core.Entity {
	if weapon == nil {
		return nil
	}
	return &WeaponEntity{Weapon: weapon}
}

var (
	_ core.Entity = (*AgentEntity)(nil)
	_ core.Entity = (*WeaponEntity)(nil)
)
