// Package checks resolves percentile checks, lethality checks, damage
// rolls and sanity damage rolls against an agent sheet.
//
// A check is constructed from a CheckInput, optionally adjusted through
// a Prompter, evaluated exactly once and reported through a Reporter.
// Classification is recomputed from the evaluated total on demand and
// never stored.
package checks

import (
	"context"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/dice"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Sentinels, matchable with errors.Is
var (
	ErrAlreadyEvaluated = errors.ErrAlreadyEvaluated
	ErrNotEvaluated     = errors.ErrNotEvaluated
	ErrDialogCanceled   = errors.ErrDialogCanceled
)

// PercentileFormula is rolled by every percentile check
const PercentileFormula = "1d100"

// DiceEvaluator rolls a formula
type DiceEvaluator interface {
	Evaluate(ctx context.Context, expression string) (*dice.Result, error)
}

// State is where a roll is in its lifecycle. Transitions only move forward.
type State int

// Roll states
const (
	StateConstructed State = iota
	StateModifierRequested
	StateEvaluated
	StateReported
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateModifierRequested:
		return "modifier-requested"
	case StateEvaluated:
		return "evaluated"
	case StateReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Check is implemented by *PercentileCheck, *LethalityCheck, *DamageRoll
// and *SanityDamageRoll.
type Check interface {
	Base() *Roll
	Evaluate(ctx context.Context, evaluator DiceEvaluator) error
}

// CheckInput carries everything needed to construct any check
type CheckInput struct {
	ID           string
	Kind         Kind
	Key          string
	Agent        *deltagreen.Agent
	Weapon       *deltagreen.Weapon
	TrainingName string
	RollMode     chat.RollMode

	// NonLethalMethod applies to lethality checks
	NonLethalMethod NonLethalMethod

	// SuccessLoss and FailedLoss override the agent's sanity loss pair
	SuccessLoss string
	FailedLoss  string
}

// Roll is the state shared by every check
type Roll struct {
	id       string
	kind     Kind
	formula  string
	modifier int
	rollMode chat.RollMode
	agent    *deltagreen.Agent
	weapon   *deltagreen.Weapon
	result   *dice.Result
	state    State
}

func newRoll(in CheckInput, formula string) Roll {
	return Roll{
		id:       in.ID,
		kind:     in.Kind,
		formula:  formula,
		rollMode: in.RollMode,
		agent:    in.Agent,
		weapon:   in.Weapon,
	}
}

// Base returns the shared roll state
func (r *Roll) Base() *Roll { return r }

// ID identifies the roll in chat and logs
func (r *Roll) ID() string { return r.id }

// Kind is fixed at construction
func (r *Roll) Kind() Kind { return r.kind }

// Formula is the dice expression that will be or was evaluated
func (r *Roll) Formula() string { return r.formula }

// Modifier is the signed adjustment to the target
func (r *Roll) Modifier() int { return r.modifier }

// RollMode is the requested visibility before policy is applied
func (r *Roll) RollMode() chat.RollMode { return r.rollMode }

// State reports the lifecycle position
func (r *Roll) State() State { return r.state }

// Agent is the acting agent
func (r *Roll) Agent() *deltagreen.Agent { return r.agent }

// Weapon is the item rolled for, nil for non-weapon checks
func (r *Roll) Weapon() *deltagreen.Weapon { return r.weapon }

// Evaluated reports whether the dice have been rolled
func (r *Roll) Evaluated() bool { return r.result != nil }

// Result is the raw dice result, nil before evaluation
func (r *Roll) Result() *dice.Result { return r.result }

// Total is the evaluated total; ok is false before evaluation
func (r *Roll) Total() (total int, ok bool) {
	if r.result == nil {
		return 0, false
	}
	return r.result.Total, true
}

// Evaluate rolls the formula once. A second call fails with
// ErrAlreadyEvaluated and leaves the first result in place.
func (r *Roll) Evaluate(ctx context.Context, evaluator DiceEvaluator) error {
	if r.result != nil {
		return errors.Wrap(ErrAlreadyEvaluated, "cannot re-roll a displayed result").
			WithMeta("roll_id", r.id)
	}

	result, err := evaluator.Evaluate(ctx, r.formula)
	if err != nil {
		return errors.Wrapf(err, "failed to evaluate %s", r.formula)
	}

	r.result = result
	r.state = StateEvaluated
	return nil
}

func (r *Roll) beforeEvaluation(action string) error {
	if r.state >= StateEvaluated {
		return errors.Wrapf(ErrAlreadyEvaluated, "cannot %s after evaluation", action).
			WithMeta("roll_id", r.id)
	}
	return nil
}

func (r *Roll) applyRollMode(mode chat.RollMode) {
	if mode != "" {
		r.rollMode = mode
	}
}
