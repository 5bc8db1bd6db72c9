package checks

import (
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// PercentileCheck rolls 1d100 against a resolved target
type PercentileCheck struct {
	Roll
	key        string
	resolution Resolution
}

// NewPercentileCheck resolves the target and label. An unknown key
// still yields a check, marked Degraded.
func NewPercentileCheck(in CheckInput, resolver *Resolver) (*PercentileCheck, error) {
	if !in.Kind.IsPercentile() || in.Kind == KindLethality {
		return nil, errors.InvalidArgumentf("%s is not a percentile check kind", in.Kind)
	}
	return newPercentileCheck(in, resolver)
}

func newPercentileCheck(in CheckInput, resolver *Resolver) (*PercentileCheck, error) {
	if in.Agent == nil {
		return nil, errors.InvalidArgument("agent is required")
	}
	if in.Kind.NeedsWeapon() && in.Weapon == nil {
		return nil, errors.InvalidArgumentf("%s checks need a weapon", in.Kind)
	}

	res := resolver.Resolve(ResolveInput{
		Kind:         in.Kind,
		Key:          in.Key,
		Agent:        in.Agent,
		Weapon:       in.Weapon,
		TrainingName: in.TrainingName,
	})

	c := &PercentileCheck{
		Roll:       newRoll(in, PercentileFormula),
		key:        in.Key,
		resolution: res,
	}
	c.modifier = res.Modifier
	return c, nil
}

// Key is the attribute or skill key the check was asked for
func (c *PercentileCheck) Key() string { return c.key }

// Target is the resolved target before the modifier
func (c *PercentileCheck) Target() int { return c.resolution.Target }

// EffectiveTarget is target plus modifier
func (c *PercentileCheck) EffectiveTarget() int { return c.resolution.Target + c.modifier }

// Label is the localized name of what is being rolled
func (c *PercentileCheck) Label() string { return c.resolution.Label }

// Degraded is true when the key could not be resolved
func (c *PercentileCheck) Degraded() bool { return c.resolution.Degraded }

// Resolution exposes the resolved target details
func (c *PercentileCheck) Resolution() Resolution { return c.resolution }

// AddModifier adjusts the target. It is rejected after evaluation.
func (c *PercentileCheck) AddModifier(n int) error {
	if err := c.beforeEvaluation("modify the target"); err != nil {
		return err
	}
	c.modifier += n
	return nil
}

// IsInhuman does not depend on the roll
func (c *PercentileCheck) IsInhuman() bool {
	return IsInhuman(c.resolution.Target, c.modifier, c.kind)
}

// IsCritical classifies the total; evaluated is false before the roll
func (c *PercentileCheck) IsCritical() (critical, evaluated bool) {
	total, ok := c.Total()
	if !ok {
		return false, false
	}
	return IsCritical(total, c.resolution.Target, c.modifier, c.IsInhuman()), true
}

// IsSuccess classifies the total; evaluated is false before the roll
func (c *PercentileCheck) IsSuccess() (success, evaluated bool) {
	total, ok := c.Total()
	if !ok {
		return false, false
	}
	return IsSuccess(total, c.resolution.Target, c.modifier), true
}

// Outcome is OutcomeUnknown until the check is evaluated
func (c *PercentileCheck) Outcome() Outcome {
	total, ok := c.Total()
	if !ok {
		return OutcomeUnknown
	}
	return Classify(total, c.resolution.Target, c.modifier, c.kind)
}

// LethalityCheck rolls 1d100 against a weapon's lethality rating. It
// never crits; a miss converts the roll into non-lethal damage.
type LethalityCheck struct {
	PercentileCheck
	method NonLethalMethod
}

// NewLethalityCheck requires a weapon
func NewLethalityCheck(in CheckInput, resolver *Resolver) (*LethalityCheck, error) {
	in.Kind = KindLethality
	pc, err := newPercentileCheck(in, resolver)
	if err != nil {
		return nil, err
	}

	method := in.NonLethalMethod
	if method == "" {
		method = NonLethalDigits
	}
	return &LethalityCheck{PercentileCheck: *pc, method: method}, nil
}

// IsLethal compares the total against the plain lethality rating. A
// modifier only shows in the report.
func (c *LethalityCheck) IsLethal() (lethal, evaluated bool) {
	total, ok := c.Total()
	if !ok {
		return false, false
	}
	return total <= c.Target(), true
}

// IsSuccess is IsLethal
func (c *LethalityCheck) IsSuccess() (success, evaluated bool) {
	return c.IsLethal()
}

// IsCritical is always false once evaluated
func (c *LethalityCheck) IsCritical() (critical, evaluated bool) {
	return false, c.Evaluated()
}

// IsInhuman is always false
func (c *LethalityCheck) IsInhuman() bool { return false }

// Outcome is success or failure, never critical
func (c *LethalityCheck) Outcome() Outcome {
	lethal, ok := c.IsLethal()
	switch {
	case !ok:
		return OutcomeUnknown
	case lethal:
		return OutcomeSuccess
	default:
		return OutcomeFailure
	}
}

// NonLethalDamage splits the total into two d10s. It is available for
// any evaluated check; callers apply it only when IsLethal is false.
func (c *LethalityCheck) NonLethalDamage() (NonLethalDamage, bool) {
	total, ok := c.Total()
	if !ok {
		return NonLethalDamage{}, false
	}
	return c.method.Split(total), true
}

// Verdict reports lethal as success with no side effects
func (c *LethalityCheck) Verdict() Verdict {
	return Verdict{Outcome: c.Outcome()}
}
