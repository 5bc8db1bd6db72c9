// Package rpgtoolkit adapts agent sheets and check results to the
// rpg-toolkit core and events packages.
package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

// EventCheckResolved is published after a check has been reported
const EventCheckResolved = "deltagreen.check.resolved"

// CheckResolvedEvent carries the verdict of a reported check. Source is
// the agent and target is the weapon, if any.
type CheckResolvedEvent struct {
	*events.GameEvent

	RollID      string
	AgentID     string
	Kind        checks.Kind
	Key         string
	Total       int
	Outcome     checks.Outcome
	SideEffects []checks.SideEffect
}

// NewCheckResolvedEvent builds the event for a reported check
func NewCheckResolvedEvent(agent *deltagreen.Agent, weapon *deltagreen.Weapon, rollID string) *CheckResolvedEvent {
	return &CheckResolvedEvent{
		GameEvent: events.NewGameEvent(EventCheckResolved, WrapAgent(agent), WrapWeapon(weapon)),
		RollID:    rollID,
		AgentID:   agent.ID,
	}
}
