package check

import (
	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/dice"
)

// RollCheckInput defines the request for rolling a check
type RollCheckInput struct {
	AgentID string
	Kind    string // wire name from checks.KindNames
	Key     string
	ItemID  string

	// TrainingID selects a special training on the agent; its attribute
	// and name replace Key and TrainingName.
	TrainingID   string
	TrainingName string

	// Adjustments applied as a confirmed dialog when Interactive is false
	Modifier      int
	RollMode      string
	OuterModifier string
	InnerModifier string

	// SuccessLoss and FailedLoss override the agent's sanity loss pair
	SuccessLoss string
	FailedLoss  string

	IsGM    bool
	Speaker string

	// Interactive asks the configured Prompter instead of using the
	// adjustments above.
	Interactive bool
}

// RollCheckOutput defines the response for rolling a check
type RollCheckOutput struct {
	// Canceled is set when the dialog was dismissed. Nothing was rolled.
	Canceled bool

	RollID   string
	Kind     checks.Kind
	Label    string
	Formula  string
	Total    int
	Target   int
	Modifier int
	Degraded bool

	// Outcome is OutcomeUnknown for damage and sanity damage rolls
	Outcome   checks.Outcome
	Inhuman   bool
	Lethal    bool
	NonLethal *checks.NonLethalDamage

	// SanityLow and SanityHigh are the two losses of a sanity damage roll
	SanityLow  int
	SanityHigh int

	Result      *dice.Result
	SideEffects []checks.SideEffect
	Message     *chat.Message
}

// Improvement is the gain applied to one skill
type Improvement struct {
	SkillKey string
	Typed    bool
	Label    string
	Gain     int
}

// ApplySkillImprovementsInput defines the request for improving failed skills
type ApplySkillImprovementsInput struct {
	AgentID string
	Speaker string
}

// ApplySkillImprovementsOutput defines the response for improving failed skills
type ApplySkillImprovementsOutput struct {
	Formula      string
	Improvements []Improvement
	Message      *chat.Message
}

// GetRollLogInput defines the request for reading an agent's roll log
type GetRollLogInput struct {
	AgentID string
	Channel string
	Limit   int
}

// GetRollLogOutput defines the response for reading an agent's roll log
type GetRollLogOutput struct {
	Messages []*chat.Message
}

// ClearRollLogInput defines the request for clearing an agent's roll log
type ClearRollLogInput struct {
	AgentID string
	Channel string
}

// ClearRollLogOutput defines the response for clearing an agent's roll log
type ClearRollLogOutput struct {
	MessagesDeleted int64
}
