package checks

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/deltagreen-api/internal/dice"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// DamageRoll rolls a weapon's damage formula. It has no pass or fail.
type DamageRoll struct {
	Roll
}

// DamageFormula is the weapon damage plus the STR bonus for unarmed and
// melee weapons.
func DamageFormula(agent *deltagreen.Agent, weapon *deltagreen.Weapon) string {
	formula := strings.TrimSpace(weapon.Damage)
	if agent == nil {
		return formula
	}
	switch weapon.Skill {
	case deltagreen.SkillUnarmedCombat, deltagreen.SkillMeleeWeapons:
		formula += agent.MeleeDamageBonusFormula()
	}
	return formula
}

// NewDamageRoll builds the formula from the weapon
func NewDamageRoll(in CheckInput) (*DamageRoll, error) {
	if in.Weapon == nil {
		return nil, errors.InvalidArgument("damage rolls need a weapon")
	}
	formula := DamageFormula(in.Agent, in.Weapon)
	if formula == "" {
		return nil, errors.InvalidArgumentf("weapon %s has no damage formula", in.Weapon.Name)
	}
	if _, err := dice.Parse(formula); err != nil {
		return nil, err
	}

	in.Kind = KindDamage
	return &DamageRoll{Roll: newRoll(in, formula)}, nil
}

// Label is the weapon name
func (d *DamageRoll) Label() string {
	if d.weapon == nil {
		return ""
	}
	return d.weapon.Name
}

// SanityDamageRoll rolls the success and failure sanity losses together
// as one "{success, failure}" pool.
type SanityDamageRoll struct {
	Roll
	successLoss string
	failedLoss  string
}

// NewSanityDamageRoll uses the input pair, falling back to the agent's
// recorded pair.
func NewSanityDamageRoll(in CheckInput) (*SanityDamageRoll, error) {
	successLoss := strings.TrimSpace(in.SuccessLoss)
	failedLoss := strings.TrimSpace(in.FailedLoss)
	if in.Agent != nil {
		if successLoss == "" {
			successLoss = strings.TrimSpace(in.Agent.Sanity.SuccessLoss)
		}
		if failedLoss == "" {
			failedLoss = strings.TrimSpace(in.Agent.Sanity.FailedLoss)
		}
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("success_loss", successLoss, vb)
	errors.ValidateRequired("failed_loss", failedLoss, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	formula := fmt.Sprintf("{%s, %s}", successLoss, failedLoss)
	if _, err := dice.Parse(formula); err != nil {
		return nil, err
	}

	in.Kind = KindSanityDamage
	return &SanityDamageRoll{
		Roll:        newRoll(in, formula),
		successLoss: successLoss,
		failedLoss:  failedLoss,
	}, nil
}

// SuccessLoss is the formula applied when the sanity check succeeded
func (s *SanityDamageRoll) SuccessLoss() string { return s.successLoss }

// FailedLoss is the formula applied when the sanity check failed
func (s *SanityDamageRoll) FailedLoss() string { return s.failedLoss }

// Results returns both losses from the single evaluation
func (s *SanityDamageRoll) Results() (low, high int, ok bool) {
	if s.result == nil || len(s.result.Groups) != 2 {
		return 0, 0, false
	}
	return s.result.Groups[0].Total, s.result.Groups[1].Total, true
}

// Loss picks the branch for the triggering check's result
func (s *SanityDamageRoll) Loss(checkSucceeded bool) (int, bool) {
	low, high, ok := s.Results()
	if !ok {
		return 0, false
	}
	if checkSucceeded {
		return low, true
	}
	return high, true
}
