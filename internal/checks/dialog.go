package checks

import (
	"context"
	"strconv"
	"strings"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/dice"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// Dialog defaults
const (
	SuggestedModifier    = 20
	DefaultOuterModifier = "2 * "
	DefaultInnerModifier = "+ 0"
)

// Prompter asks the player for roll adjustments. A dismissed dialog
// returns ErrDialogCanceled and the roll must not be evaluated.
type Prompter interface {
	RequestModifier(ctx context.Context, req ModifierRequest) (*ModifierResponse, error)
	RequestDamageFormula(ctx context.Context, req DamageFormulaRequest) (*DamageFormulaResponse, error)
}

// ModifierRequest is shown before a percentile check
type ModifierRequest struct {
	Label             string
	CurrentTarget     int
	HideTarget        bool
	SuggestedModifier int
	DefaultRollMode   chat.RollMode
}

// ModifierResponse is the confirmed dialog
type ModifierResponse struct {
	Modifier int
	RollMode chat.RollMode
}

// DamageFormulaRequest is shown before a damage roll
type DamageFormulaRequest struct {
	Label           string
	OriginalFormula string
	OuterModifier   string
	InnerModifier   string
	DefaultRollMode chat.RollMode
}

// DamageFormulaResponse is the confirmed damage dialog
type DamageFormulaResponse struct {
	OriginalFormula string
	OuterModifier   string
	InnerModifier   string
	RollMode        chat.RollMode
}

// Formula combines the dialog fields with BuildDamageFormula
func (r *DamageFormulaResponse) Formula() string {
	return BuildDamageFormula(r.OriginalFormula, r.OuterModifier, r.InnerModifier)
}

// BuildDamageFormula wraps original as outer(original inner) when outer
// is set, else appends inner. An inner of "+0" is dropped.
func BuildDamageFormula(original, outer, inner string) string {
	inner = strings.TrimSpace(inner)
	if strings.ReplaceAll(inner, " ", "") == "+0" {
		inner = ""
	}
	if strings.TrimSpace(outer) != "" {
		return outer + "(" + original + inner + ")"
	}
	return original + inner
}

// ParseSignedModifier reads the dialog's magnitude and sign fields. A
// blank magnitude is 0.
func ParseSignedModifier(magnitude, sign string) (int, error) {
	magnitude = strings.TrimSpace(magnitude)
	if magnitude == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(magnitude)
	if err != nil {
		return 0, errors.InvalidArgumentf("modifier %q is not a number", magnitude)
	}
	if n < 0 {
		n = -n
	}
	if strings.TrimSpace(sign) == "-" {
		n = -n
	}
	return n, nil
}

// ModifierRequest builds the dialog request for this check
func (c *PercentileCheck) ModifierRequest(policy Policy, isGM bool) ModifierRequest {
	return ModifierRequest{
		Label:             c.Label(),
		CurrentTarget:     c.EffectiveTarget(),
		HideTarget:        policy.HideTarget(c.kind, c.key, isGM),
		SuggestedModifier: SuggestedModifier,
		DefaultRollMode:   policy.RollModeFor(c.kind, c.key, c.rollMode, isGM),
	}
}

// ApplyModifier applies a confirmed dialog
func (c *PercentileCheck) ApplyModifier(resp *ModifierResponse) error {
	if err := c.beforeEvaluation("apply a modifier"); err != nil {
		return err
	}
	if resp == nil {
		return errors.InvalidArgument("modifier response is required")
	}
	c.modifier += resp.Modifier
	c.applyRollMode(resp.RollMode)
	c.state = StateModifierRequested
	return nil
}

// FormulaRequest builds the damage dialog request
func (d *DamageRoll) FormulaRequest(policy Policy) DamageFormulaRequest {
	return DamageFormulaRequest{
		Label:           d.Label(),
		OriginalFormula: d.formula,
		OuterModifier:   DefaultOuterModifier,
		InnerModifier:   DefaultInnerModifier,
		DefaultRollMode: policy.RollModeFor(d.kind, "", d.rollMode, false),
	}
}

// ApplyFormula replaces the damage formula with the dialog result
func (d *DamageRoll) ApplyFormula(resp *DamageFormulaResponse) error {
	if err := d.beforeEvaluation("rewrite the damage formula"); err != nil {
		return err
	}
	if resp == nil {
		return errors.InvalidArgument("damage formula response is required")
	}

	formula := resp.Formula()
	if strings.TrimSpace(formula) == "" {
		formula = d.formula
	}
	if _, err := dice.Parse(formula); err != nil {
		return err
	}

	d.formula = formula
	d.applyRollMode(resp.RollMode)
	d.state = StateModifierRequested
	return nil
}
