package checks

import (
	"context"

	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// NewCheck constructs the variant that matches in.Kind
func NewCheck(in CheckInput, resolver *Resolver) (Check, error) {
	switch in.Kind {
	case KindStat, KindSkill, KindTypedSkill, KindSpecialTraining, KindSanity, KindLuck,
		KindWeaponCustom, KindWeaponSkill, KindWeaponStat:
		return NewPercentileCheck(in, resolver)
	case KindLethality:
		return NewLethalityCheck(in, resolver)
	case KindDamage:
		return NewDamageRoll(in)
	case KindSanityDamage:
		return NewSanityDamageRoll(in)
	default:
		return nil, errors.InvalidArgumentf("unknown check kind %s", in.Kind)
	}
}

// Prompt runs the dialog that fits the check. Sanity damage rolls have
// none. It returns ErrDialogCanceled when the player dismissed it.
func Prompt(ctx context.Context, check Check, prompter Prompter, policy Policy, isGM bool) error {
	switch c := check.(type) {
	case *LethalityCheck:
		return promptModifier(ctx, &c.PercentileCheck, prompter, policy, isGM)
	case *PercentileCheck:
		return promptModifier(ctx, c, prompter, policy, isGM)
	case *DamageRoll:
		resp, err := prompter.RequestDamageFormula(ctx, c.FormulaRequest(policy))
		if err != nil {
			return err
		}
		return c.ApplyFormula(resp)
	case *SanityDamageRoll:
		return nil
	default:
		return errors.Internalf("unsupported check type %T", check)
	}
}

func promptModifier(ctx context.Context, c *PercentileCheck, prompter Prompter, policy Policy, isGM bool) error {
	resp, err := prompter.RequestModifier(ctx, c.ModifierRequest(policy, isGM))
	if err != nil {
		return err
	}
	return c.ApplyModifier(resp)
}
