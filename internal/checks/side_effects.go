package checks

import (
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

// SideEffectKind names a change the caller should make to the agent
type SideEffectKind string

// Side effect kinds
const (
	SideEffectMarkSkillFailed SideEffectKind = "mark-skill-failed"
)

// SideEffect is a recommended agent update produced by a check
type SideEffect struct {
	Kind     SideEffectKind `json:"kind"`
	AgentID  string         `json:"agent_id"`
	SkillKey string         `json:"skill_key"`
	Typed    bool           `json:"typed"`
}

// Verdict pairs the outcome with what the caller should do about it
type Verdict struct {
	Outcome     Outcome
	SideEffects []SideEffect
}

// Verdict classifies the check. It is empty before evaluation.
func (c *PercentileCheck) Verdict() Verdict {
	return Verdict{Outcome: c.Outcome(), SideEffects: c.RecommendedSideEffects()}
}

// RecommendedSideEffects marks a failed skill for improvement. Only
// skill-based kinds qualify, and never unnatural, luck or ritual.
func (c *PercentileCheck) RecommendedSideEffects() []SideEffect {
	outcome := c.Outcome()
	if outcome == OutcomeUnknown || outcome.Succeeded() {
		return nil
	}

	switch c.kind {
	case KindSkill, KindTypedSkill, KindWeaponSkill:
	default:
		return nil
	}

	res := c.resolution
	if res.Degraded || res.SkillKey == "" {
		return nil
	}
	if !res.Typed && !deltagreen.CanImproveByFailure(res.SkillKey) {
		return nil
	}

	agentID := ""
	if c.agent != nil {
		agentID = c.agent.ID
	}
	return []SideEffect{{
		Kind:     SideEffectMarkSkillFailed,
		AgentID:  agentID,
		SkillKey: res.SkillKey,
		Typed:    res.Typed,
	}}
}

// Apply performs the side effect on an agent. It reports whether the
// agent changed.
func (e SideEffect) Apply(agent *deltagreen.Agent) bool {
	switch e.Kind {
	case SideEffectMarkSkillFailed:
		return agent.MarkSkillFailed(e.SkillKey, e.Typed)
	default:
		return false
	}
}
