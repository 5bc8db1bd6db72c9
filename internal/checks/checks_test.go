package checks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	checksmock "github.com/KirkDiggler/deltagreen-api/internal/checks/mock"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/testutils"
	"github.com/KirkDiggler/deltagreen-api/internal/testutils/builders"
)

type ChecksTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	resolver *checks.Resolver
	prompter *checksmock.MockPrompter
	agent    *deltagreen.Agent
	ctx      context.Context
}

func TestChecksSuite(t *testing.T) {
	suite.Run(t, new(ChecksTestSuite))
}

func (s *ChecksTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.resolver = newResolver(s.ctrl)
	s.prompter = checksmock.NewMockPrompter(s.ctrl)
	s.agent = testutils.CreateTestAgent()
	s.ctx = context.Background()
}

func (s *ChecksTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ChecksTestSuite) weapon(id string) *deltagreen.Weapon {
	w, ok := s.agent.Weapon(id)
	s.Require().True(ok, "fixture weapon %s", id)
	return w
}

func (s *ChecksTestSuite) rollPercentile(in checks.CheckInput, face int) *checks.PercentileCheck {
	c, err := checks.NewPercentileCheck(in, s.resolver)
	s.Require().NoError(err)
	eval, _ := newEvaluator(face)
	s.Require().NoError(c.Evaluate(s.ctx, eval))
	return c
}

func (s *ChecksTestSuite) TestResolve() {
	s.agent.Trainings = []deltagreen.SpecialTraining{{ID: "st-1", Name: "Stakeout", Attribute: "alertness"}}
	dexPistol := &deltagreen.Weapon{Name: "Thrown Rock", Skill: deltagreen.StatDexterity, SkillModifier: -5}

	tests := []struct {
		name string
		in   checks.ResolveInput
		want checks.Resolution
	}{
		{
			name: "statistic times five",
			in:   checks.ResolveInput{Kind: checks.KindStat, Key: deltagreen.StatStrength},
			want: checks.Resolution{Target: 70, Label: "STR"},
		},
		{
			name: "base skill",
			in:   checks.ResolveInput{Kind: checks.KindSkill, Key: "firearms"},
			want: checks.Resolution{Target: 40, Label: "Firearms", SkillKey: "firearms"},
		},
		{
			name: "skill key falls through to typed skill",
			in:   checks.ResolveInput{Kind: checks.KindSkill, Key: "tskill_russian"},
			want: checks.Resolution{Target: 35, Label: "Foreign Language (Russian)", SkillKey: "tskill_russian", Typed: true},
		},
		{
			name: "typed skill",
			in:   checks.ResolveInput{Kind: checks.KindTypedSkill, Key: "tskill_russian"},
			want: checks.Resolution{Target: 35, Label: "Foreign Language (Russian)", SkillKey: "tskill_russian", Typed: true},
		},
		{
			name: "ritual derives from sanity",
			in:   checks.ResolveInput{Kind: checks.KindSkill, Key: deltagreen.SkillRitual},
			want: checks.Resolution{Target: 39, Label: "Ritual", SkillKey: deltagreen.SkillRitual},
		},
		{
			name: "special training wraps the label",
			in:   checks.ResolveInput{Kind: checks.KindSpecialTraining, Key: "alertness", TrainingName: "Stakeout"},
			want: checks.Resolution{Target: 55, Label: "Stakeout - (Alertness)", SkillKey: "alertness"},
		},
		{
			name: "special training on a statistic",
			in:   checks.ResolveInput{Kind: checks.KindSpecialTraining, Key: deltagreen.StatStrength, TrainingName: "Demolition"},
			want: checks.Resolution{Target: 70, Label: "Demolition - (STR)"},
		},
		{
			name: "sanity",
			in:   checks.ResolveInput{Kind: checks.KindSanity},
			want: checks.Resolution{Target: 60, Label: "SAN"},
		},
		{
			name: "luck is fixed",
			in:   checks.ResolveInput{Kind: checks.KindLuck},
			want: checks.Resolution{Target: 50, Label: "Luck"},
		},
		{
			name: "custom weapon",
			in:   checks.ResolveInput{Kind: checks.KindWeaponCustom, Weapon: s.weapon(testutils.TestCustomID)},
			want: checks.Resolution{Target: 60, Label: "Custom", Modifier: 10},
		},
		{
			name: "weapon skill",
			in:   checks.ResolveInput{Kind: checks.KindWeaponSkill, Weapon: s.weapon(testutils.TestGlockID)},
			want: checks.Resolution{Target: 40, Label: "Firearms", SkillKey: "firearms"},
		},
		{
			name: "weapon statistic",
			in:   checks.ResolveInput{Kind: checks.KindWeaponStat, Weapon: dexPistol},
			want: checks.Resolution{Target: 55, Label: "DG.Attributes.dex", Modifier: -5},
		},
		{
			name: "lethality",
			in:   checks.ResolveInput{Kind: checks.KindLethality, Weapon: s.weapon(testutils.TestShotgunID)},
			want: checks.Resolution{Target: 20, Label: "Lethality"},
		},
		{
			name: "unknown skill degrades",
			in:   checks.ResolveInput{Kind: checks.KindSkill, Key: "basket_weaving"},
			want: checks.Resolution{Degraded: true},
		},
		{
			name: "unknown statistic degrades",
			in:   checks.ResolveInput{Kind: checks.KindStat, Key: "app"},
			want: checks.Resolution{Degraded: true},
		},
		{
			name: "weapon kind without weapon degrades",
			in:   checks.ResolveInput{Kind: checks.KindWeaponSkill},
			want: checks.Resolution{Degraded: true},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			in := tt.in
			in.Agent = s.agent
			s.Equal(tt.want, s.resolver.Resolve(in))
		})
	}
}

func (s *ChecksTestSuite) TestResolveWithoutAgent() {
	s.True(s.resolver.Resolve(checks.ResolveInput{Kind: checks.KindLuck}).Degraded)
}

func (s *ChecksTestSuite) TestScenarioA_SuccessAtTarget() {
	agent := builders.NewAgentBuilder().WithSkill("search", 50).Build()
	c := s.rollPercentile(checks.CheckInput{Kind: checks.KindSkill, Key: "search", Agent: agent}, 50)

	success, ok := c.IsSuccess()
	s.True(ok)
	s.True(success)
	critical, _ := c.IsCritical()
	s.False(critical)
	s.Equal(checks.OutcomeSuccess, c.Outcome())
}

func (s *ChecksTestSuite) TestScenarioB_DoublesCrit() {
	agent := builders.NewAgentBuilder().WithSkill("search", 50).Build()
	c := s.rollPercentile(checks.CheckInput{Kind: checks.KindSkill, Key: "search", Agent: agent}, 11)

	success, _ := c.IsSuccess()
	critical, _ := c.IsCritical()
	s.True(success)
	s.True(critical)
	s.Equal(checks.OutcomeCriticalSuccess, c.Outcome())
}

func (s *ChecksTestSuite) TestScenarioC_InhumanStatistic() {
	agent := builders.NewAgentBuilder().WithStat(deltagreen.StatStrength, 24).Build()
	c := s.rollPercentile(checks.CheckInput{Kind: checks.KindStat, Key: deltagreen.StatStrength, Agent: agent}, 20)

	s.Equal(120, c.Target())
	s.True(c.IsInhuman())
	success, _ := c.IsSuccess()
	critical, _ := c.IsCritical()
	s.True(success)
	s.True(critical)
}

func (s *ChecksTestSuite) TestScenarioD_HundredFails() {
	agent := builders.NewAgentBuilder().WithStat(deltagreen.StatStrength, 24).Build()
	c := s.rollPercentile(checks.CheckInput{Kind: checks.KindStat, Key: deltagreen.StatStrength, Agent: agent}, 100)

	success, ok := c.IsSuccess()
	s.True(ok)
	s.False(success)
	s.Equal(checks.OutcomeCriticalFailure, c.Outcome())
}

func (s *ChecksTestSuite) TestScenarioE_Lethality() {
	rifle := &deltagreen.Weapon{ID: "rifle", Name: "Rifle", Skill: "firearms", IsLethal: true, Lethality: 40}

	s.Run("lethal", func() {
		c, err := checks.NewLethalityCheck(checks.CheckInput{Agent: s.agent, Weapon: rifle}, s.resolver)
		s.Require().NoError(err)
		eval, _ := newEvaluator(35)
		s.Require().NoError(c.Evaluate(s.ctx, eval))

		lethal, ok := c.IsLethal()
		s.True(ok)
		s.True(lethal)
		s.Equal(checks.OutcomeSuccess, c.Outcome())
	})

	s.Run("non-lethal damage", func() {
		c, err := checks.NewLethalityCheck(checks.CheckInput{Agent: s.agent, Weapon: rifle}, s.resolver)
		s.Require().NoError(err)
		eval, _ := newEvaluator(55)
		s.Require().NoError(c.Evaluate(s.ctx, eval))

		lethal, _ := c.IsLethal()
		s.False(lethal)
		critical, _ := c.IsCritical()
		s.False(critical, "55 is doubles but lethality never crits")
		damage, ok := c.NonLethalDamage()
		s.True(ok)
		s.Equal(checks.NonLethalDamage{Die1: 5, Die2: 5, Total: 10}, damage)
	})
}

func (s *ChecksTestSuite) TestLethalityIgnoresModifier() {
	s.Run("positive modifier does not widen the rating", func() {
		c, err := checks.NewLethalityCheck(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestShotgunID)}, s.resolver)
		s.Require().NoError(err)
		s.Require().NoError(c.AddModifier(10))

		eval, _ := newEvaluator(25)
		s.Require().NoError(c.Evaluate(s.ctx, eval))
		lethal, _ := c.IsLethal()
		s.False(lethal)
		s.Equal(checks.OutcomeFailure, c.Outcome())
		s.Equal(30, c.EffectiveTarget())
	})

	s.Run("negative modifier does not narrow the rating", func() {
		c, err := checks.NewLethalityCheck(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestShotgunID)}, s.resolver)
		s.Require().NoError(err)
		s.Require().NoError(c.AddModifier(-10))

		eval, _ := newEvaluator(15)
		s.Require().NoError(c.Evaluate(s.ctx, eval))
		lethal, _ := c.IsLethal()
		s.True(lethal)
	})
}

func (s *ChecksTestSuite) TestLethalityLegacySplit() {
	c, err := checks.NewLethalityCheck(checks.CheckInput{
		Agent:           s.agent,
		Weapon:          s.weapon(testutils.TestShotgunID),
		NonLethalMethod: checks.NonLethalLegacy,
	}, s.resolver)
	s.Require().NoError(err)

	eval, _ := newEvaluator(70)
	s.Require().NoError(c.Evaluate(s.ctx, eval))
	damage, _ := c.NonLethalDamage()
	s.Equal(16, damage.Total)
}

func (s *ChecksTestSuite) TestUnevaluatedCheckIsUnknown() {
	c, err := checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindSkill, Key: "alertness", Agent: s.agent}, s.resolver)
	s.Require().NoError(err)

	_, ok := c.IsSuccess()
	s.False(ok)
	_, ok = c.IsCritical()
	s.False(ok)
	s.Equal(checks.OutcomeUnknown, c.Outcome())
	s.Empty(c.RecommendedSideEffects())
	s.Equal(checks.StateConstructed, c.State())
}

func (s *ChecksTestSuite) TestDegradedCheckOnlyFails() {
	c := s.rollPercentile(checks.CheckInput{Kind: checks.KindSkill, Key: "basket_weaving", Agent: s.agent}, 2)

	s.True(c.Degraded())
	s.Equal(0, c.Target())
	s.Equal(checks.OutcomeFailure, c.Outcome())
	s.Empty(c.RecommendedSideEffects())
}

func (s *ChecksTestSuite) TestEvaluateOnce() {
	c, err := checks.NewPercentileCheck(checks.CheckInput{ID: "roll_1", Kind: checks.KindSkill, Key: "alertness", Agent: s.agent}, s.resolver)
	s.Require().NoError(err)

	eval, roller := newEvaluator(30, 90)
	s.Require().NoError(c.Evaluate(s.ctx, eval))

	err = c.Evaluate(s.ctx, eval)
	s.Require().Error(err)
	s.True(errors.Is(err, checks.ErrAlreadyEvaluated))
	s.True(errors.IsFailedPrecondition(err))

	total, _ := c.Total()
	s.Equal(30, total)
	s.Equal(1, roller.Remaining())

	s.True(errors.Is(c.AddModifier(10), checks.ErrAlreadyEvaluated))
	s.True(errors.Is(c.ApplyModifier(&checks.ModifierResponse{Modifier: 5}), checks.ErrAlreadyEvaluated))
	s.Equal(55, c.EffectiveTarget())
}

func (s *ChecksTestSuite) TestSanityDamageRollsBothBranchesOnce() {
	roll, err := checks.NewSanityDamageRoll(checks.CheckInput{Agent: s.agent})
	s.Require().NoError(err)
	s.Equal("{1, 1d6}", roll.Formula())

	_, _, ok := roll.Results()
	s.False(ok)

	eval, roller := newEvaluator(4, 6)
	s.Require().NoError(roll.Evaluate(s.ctx, eval))

	low, high, ok := roll.Results()
	s.True(ok)
	s.Equal(1, low)
	s.Equal(4, high)
	s.Equal([]string{"d6"}, roller.Rolled())

	s.True(errors.Is(roll.Evaluate(s.ctx, eval), checks.ErrAlreadyEvaluated))
	s.Equal(1, roller.Remaining())

	loss, _ := roll.Loss(true)
	s.Equal(1, loss)
	loss, _ = roll.Loss(false)
	s.Equal(4, loss)
}

func (s *ChecksTestSuite) TestSanityDamageOverridesAndValidation() {
	roll, err := checks.NewSanityDamageRoll(checks.CheckInput{Agent: s.agent, SuccessLoss: "0", FailedLoss: "1d4"})
	s.Require().NoError(err)
	s.Equal("{0, 1d4}", roll.Formula())
	s.Equal(checks.KindSanityDamage, roll.Kind())

	bare := builders.NewAgentBuilder().Build()
	_, err = checks.NewSanityDamageRoll(checks.CheckInput{Agent: bare})
	s.True(errors.IsInvalidArgument(err))

	_, err = checks.NewSanityDamageRoll(checks.CheckInput{Agent: bare, SuccessLoss: "1", FailedLoss: "1d"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ChecksTestSuite) TestDamageFormula() {
	s.Equal("1d4+1", checks.DamageFormula(s.agent, s.weapon(testutils.TestKnifeID)))
	s.Equal("1d10", checks.DamageFormula(s.agent, s.weapon(testutils.TestGlockID)))

	weak := builders.NewAgentBuilder().WithStat(deltagreen.StatStrength, 3).Build()
	fist := &deltagreen.Weapon{Name: "Fist", Skill: deltagreen.SkillUnarmedCombat, Damage: "1d4"}
	s.Equal("1d4-2", checks.DamageFormula(weak, fist))
}

func (s *ChecksTestSuite) TestNewCheckDispatch() {
	tests := []struct {
		name string
		in   checks.CheckInput
		want any
	}{
		{name: "skill", in: checks.CheckInput{Kind: checks.KindSkill, Key: "alertness"}, want: &checks.PercentileCheck{}},
		{name: "lethality", in: checks.CheckInput{Kind: checks.KindLethality, Weapon: s.weapon(testutils.TestShotgunID)}, want: &checks.LethalityCheck{}},
		{name: "damage", in: checks.CheckInput{Kind: checks.KindDamage, Weapon: s.weapon(testutils.TestGlockID)}, want: &checks.DamageRoll{}},
		{name: "sanity damage", in: checks.CheckInput{Kind: checks.KindSanityDamage}, want: &checks.SanityDamageRoll{}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			in := tt.in
			in.Agent = s.agent
			c, err := checks.NewCheck(in, s.resolver)
			s.Require().NoError(err)
			s.IsType(tt.want, c)
			s.Equal(tt.in.Kind, c.Base().Kind())
		})
	}
}

func (s *ChecksTestSuite) TestNewCheckRejects() {
	_, err := checks.NewCheck(checks.CheckInput{Kind: checks.KindUnspecified, Agent: s.agent}, s.resolver)
	s.True(errors.IsInvalidArgument(err))

	_, err = checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindDamage, Agent: s.agent}, s.resolver)
	s.True(errors.IsInvalidArgument(err))

	_, err = checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindWeaponSkill, Agent: s.agent}, s.resolver)
	s.True(errors.IsInvalidArgument(err))

	_, err = checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindSkill, Key: "alertness"}, s.resolver)
	s.True(errors.IsInvalidArgument(err))

	_, err = checks.NewDamageRoll(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestShotgunID)})
	s.True(errors.IsInvalidArgument(err), "shotgun has no damage formula")
}

func (s *ChecksTestSuite) TestParseKind() {
	k, err := checks.ParseKind("weapon", s.weapon(testutils.TestCustomID))
	s.Require().NoError(err)
	s.Equal(checks.KindWeaponCustom, k)

	k, err = checks.ParseKind("weapon", s.weapon(testutils.TestGlockID))
	s.Require().NoError(err)
	s.Equal(checks.KindWeaponSkill, k)

	k, err = checks.ParseKind("weapon", &deltagreen.Weapon{Skill: deltagreen.StatDexterity})
	s.Require().NoError(err)
	s.Equal(checks.KindWeaponStat, k)

	k, err = checks.ParseKind("sanity-damage", nil)
	s.Require().NoError(err)
	s.Equal(checks.KindSanityDamage, k)

	_, err = checks.ParseKind("weapon", nil)
	s.True(errors.IsInvalidArgument(err))
	_, err = checks.ParseKind("bogus", nil)
	s.True(errors.IsInvalidArgument(err))

	s.Len(checks.KindNames(), 13)
}

func (s *ChecksTestSuite) TestPromptModifier() {
	c, err := checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindSkill, Key: "alertness", Agent: s.agent}, s.resolver)
	s.Require().NoError(err)

	s.prompter.EXPECT().
		RequestModifier(s.ctx, checks.ModifierRequest{
			Label:             "Alertness",
			CurrentTarget:     55,
			SuggestedModifier: checks.SuggestedModifier,
			DefaultRollMode:   chat.RollModePublic,
		}).
		Return(&checks.ModifierResponse{Modifier: 20, RollMode: chat.RollModeGM}, nil)

	s.Require().NoError(checks.Prompt(s.ctx, c, s.prompter, checks.DefaultPolicy(), false))
	s.Equal(75, c.EffectiveTarget())
	s.Equal(chat.RollModeGM, c.RollMode())
	s.Equal(checks.StateModifierRequested, c.State())
}

func (s *ChecksTestSuite) TestPromptHidesPrivateSanity() {
	c, err := checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindSanity, Agent: s.agent}, s.resolver)
	s.Require().NoError(err)

	policy := checks.DefaultPolicy()
	policy.HideSanityFromPlayers = true

	s.prompter.EXPECT().
		RequestModifier(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req checks.ModifierRequest) (*checks.ModifierResponse, error) {
			s.True(req.HideTarget)
			s.Equal(chat.RollModeBlind, req.DefaultRollMode)
			return &checks.ModifierResponse{}, nil
		})

	s.Require().NoError(checks.Prompt(s.ctx, c, s.prompter, policy, false))
}

func (s *ChecksTestSuite) TestPromptCanceled() {
	c, err := checks.NewPercentileCheck(checks.CheckInput{Kind: checks.KindSkill, Key: "alertness", Agent: s.agent}, s.resolver)
	s.Require().NoError(err)

	s.prompter.EXPECT().RequestModifier(s.ctx, gomock.Any()).Return(nil, checks.ErrDialogCanceled)

	err = checks.Prompt(s.ctx, c, s.prompter, checks.DefaultPolicy(), false)
	s.True(errors.Is(err, checks.ErrDialogCanceled))
	s.False(c.Evaluated())
	s.Equal(checks.StateConstructed, c.State())
}

func (s *ChecksTestSuite) TestPromptLethality() {
	c, err := checks.NewLethalityCheck(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestShotgunID)}, s.resolver)
	s.Require().NoError(err)

	s.prompter.EXPECT().RequestModifier(s.ctx, gomock.Any()).Return(&checks.ModifierResponse{Modifier: -10}, nil)

	s.Require().NoError(checks.Prompt(s.ctx, c, s.prompter, checks.DefaultPolicy(), false))
	s.Equal(10, c.EffectiveTarget())
}

func (s *ChecksTestSuite) TestPromptDamage() {
	roll, err := checks.NewDamageRoll(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestKnifeID)})
	s.Require().NoError(err)

	s.prompter.EXPECT().
		RequestDamageFormula(s.ctx, checks.DamageFormulaRequest{
			Label:           "Combat Knife",
			OriginalFormula: "1d4+1",
			OuterModifier:   checks.DefaultOuterModifier,
			InnerModifier:   checks.DefaultInnerModifier,
			DefaultRollMode: chat.RollModePublic,
		}).
		Return(&checks.DamageFormulaResponse{
			OriginalFormula: "1d4+1",
			OuterModifier:   checks.DefaultOuterModifier,
			InnerModifier:   checks.DefaultInnerModifier,
		}, nil)

	s.Require().NoError(checks.Prompt(s.ctx, roll, s.prompter, checks.DefaultPolicy(), false))
	s.Equal("2 * (1d4+1)", roll.Formula())

	eval, _ := newEvaluator(3)
	s.Require().NoError(roll.Evaluate(s.ctx, eval))
	total, _ := roll.Total()
	s.Equal(8, total)
}

func (s *ChecksTestSuite) TestPromptDamageRejectsBadFormula() {
	roll, err := checks.NewDamageRoll(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestGlockID)})
	s.Require().NoError(err)

	s.prompter.EXPECT().RequestDamageFormula(s.ctx, gomock.Any()).
		Return(&checks.DamageFormulaResponse{OriginalFormula: "1d10", InnerModifier: "+ x"}, nil)

	err = checks.Prompt(s.ctx, roll, s.prompter, checks.DefaultPolicy(), false)
	s.True(errors.IsInvalidArgument(err))
	s.Equal("1d10", roll.Formula())
}

func (s *ChecksTestSuite) TestPromptSkipsSanityDamage() {
	roll, err := checks.NewSanityDamageRoll(checks.CheckInput{Agent: s.agent})
	s.Require().NoError(err)

	s.NoError(checks.Prompt(s.ctx, roll, s.prompter, checks.DefaultPolicy(), false))
}

func (s *ChecksTestSuite) TestSideEffects() {
	s.Run("failed skill is marked", func() {
		c := s.rollPercentile(checks.CheckInput{Kind: checks.KindSkill, Key: "alertness", Agent: s.agent}, 90)
		v := c.Verdict()
		s.Equal(checks.OutcomeFailure, v.Outcome)
		s.Equal([]checks.SideEffect{{
			Kind:     checks.SideEffectMarkSkillFailed,
			AgentID:  testutils.TestAgentID,
			SkillKey: "alertness",
		}}, v.SideEffects)

		s.False(s.agent.Skills["alertness"].Failure, "the check itself never mutates the agent")
		s.True(v.SideEffects[0].Apply(s.agent))
		s.True(s.agent.Skills["alertness"].Failure)
	})

	s.Run("fumble is marked", func() {
		c := s.rollPercentile(checks.CheckInput{Kind: checks.KindSkill, Key: "alertness", Agent: s.agent}, 99)
		s.Len(c.RecommendedSideEffects(), 1)
	})

	s.Run("typed skill", func() {
		c := s.rollPercentile(checks.CheckInput{Kind: checks.KindTypedSkill, Key: "tskill_russian", Agent: s.agent}, 80)
		effects := c.RecommendedSideEffects()
		s.Require().Len(effects, 1)
		s.True(effects[0].Typed)
		s.True(effects[0].Apply(s.agent))
		s.True(s.agent.TypedSkills["tskill_russian"].Failure)
	})

	s.Run("weapon skill marks the weapon's skill", func() {
		c := s.rollPercentile(checks.CheckInput{Kind: checks.KindWeaponSkill, Agent: s.agent, Weapon: s.weapon(testutils.TestGlockID)}, 80)
		effects := c.RecommendedSideEffects()
		s.Require().Len(effects, 1)
		s.Equal("firearms", effects[0].SkillKey)
	})

	noEffects := []struct {
		name string
		in   checks.CheckInput
		face int
	}{
		{name: "success", in: checks.CheckInput{Kind: checks.KindSkill, Key: "alertness"}, face: 10},
		{name: "unnatural", in: checks.CheckInput{Kind: checks.KindSkill, Key: deltagreen.SkillUnnatural}, face: 90},
		{name: "ritual", in: checks.CheckInput{Kind: checks.KindSkill, Key: deltagreen.SkillRitual}, face: 90},
		{name: "luck", in: checks.CheckInput{Kind: checks.KindLuck}, face: 90},
		{name: "statistic", in: checks.CheckInput{Kind: checks.KindStat, Key: deltagreen.StatPower}, face: 90},
		{name: "sanity", in: checks.CheckInput{Kind: checks.KindSanity}, face: 90},
	}
	for _, tt := range noEffects {
		s.Run("no effect on "+tt.name, func() {
			in := tt.in
			in.Agent = s.agent
			c := s.rollPercentile(in, tt.face)
			s.Empty(c.RecommendedSideEffects())
		})
	}
}

func (s *ChecksTestSuite) TestLethalityVerdictHasNoSideEffects() {
	c, err := checks.NewLethalityCheck(checks.CheckInput{Agent: s.agent, Weapon: s.weapon(testutils.TestShotgunID)}, s.resolver)
	s.Require().NoError(err)
	eval, _ := newEvaluator(90)
	s.Require().NoError(c.Evaluate(s.ctx, eval))

	v := c.Verdict()
	s.Equal(checks.OutcomeFailure, v.Outcome)
	s.Empty(v.SideEffects)
}

func TestBuildDamageFormula(t *testing.T) {
	tests := []struct {
		original, outer, inner string
		want                   string
	}{
		{original: "1d6", outer: "2 * ", inner: "+ 0", want: "2 * (1d6)"},
		{original: "1d6", outer: "", inner: "+ 2", want: "1d6+ 2"},
		{original: "1d6", outer: "", inner: "+0", want: "1d6"},
		{original: "1d6", outer: "  ", inner: "", want: "1d6"},
		{original: "1d8+1", outer: "3 * ", inner: "- 1", want: "3 * (1d8+1- 1)"},
	}

	for _, tt := range tests {
		if got := checks.BuildDamageFormula(tt.original, tt.outer, tt.inner); got != tt.want {
			t.Errorf("BuildDamageFormula(%q, %q, %q) = %q, want %q", tt.original, tt.outer, tt.inner, got, tt.want)
		}
	}
}

func TestParseSignedModifier(t *testing.T) {
	tests := []struct {
		magnitude, sign string
		want            int
		wantErr         bool
	}{
		{magnitude: "20", sign: "+", want: 20},
		{magnitude: "20", sign: "-", want: -20},
		{magnitude: " 15 ", sign: " - ", want: -15},
		{magnitude: "-5", sign: "+", want: 5},
		{magnitude: "", sign: "-", want: 0},
		{magnitude: "abc", sign: "+", wantErr: true},
	}

	for _, tt := range tests {
		got, err := checks.ParseSignedModifier(tt.magnitude, tt.sign)
		if tt.wantErr {
			if !errors.IsInvalidArgument(err) {
				t.Errorf("ParseSignedModifier(%q, %q) err = %v, want invalid argument", tt.magnitude, tt.sign, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseSignedModifier(%q, %q) = %d, %v, want %d", tt.magnitude, tt.sign, got, err, tt.want)
		}
	}
}

func TestPolicy(t *testing.T) {
	private := checks.Policy{HideSanityFromPlayers: true}

	tests := []struct {
		name      string
		policy    checks.Policy
		kind      checks.Kind
		key       string
		requested chat.RollMode
		isGM      bool
		wantHide  bool
		wantMode  chat.RollMode
	}{
		{name: "public default", policy: checks.DefaultPolicy(), kind: checks.KindSkill, wantMode: chat.RollModePublic},
		{name: "empty policy", kind: checks.KindSkill, wantMode: chat.RollModePublic},
		{name: "table default", policy: checks.Policy{DefaultRollMode: chat.RollModeGM}, kind: checks.KindSkill, wantMode: chat.RollModeGM},
		{name: "request wins", policy: checks.Policy{DefaultRollMode: chat.RollModeGM}, kind: checks.KindSkill, requested: chat.RollModeSelf, wantMode: chat.RollModeSelf},
		{name: "private sanity forced blind", policy: private, kind: checks.KindSanity, requested: chat.RollModePublic, wantHide: true, wantMode: chat.RollModeBlind},
		{name: "private ritual forced blind", policy: private, kind: checks.KindSkill, key: deltagreen.SkillRitual, wantHide: true, wantMode: chat.RollModeBlind},
		{name: "gm sees sanity", policy: private, kind: checks.KindSanity, isGM: true, wantMode: chat.RollModePublic},
		{name: "private only touches sanity", policy: private, kind: checks.KindSkill, key: "alertness", wantMode: chat.RollModePublic},
		{name: "sanity shown when not private", policy: checks.DefaultPolicy(), kind: checks.KindSanity, wantMode: chat.RollModePublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.HideTarget(tt.kind, tt.key, tt.isGM); got != tt.wantHide {
				t.Errorf("HideTarget = %v, want %v", got, tt.wantHide)
			}
			if got := tt.policy.RollModeFor(tt.kind, tt.key, tt.requested, tt.isGM); got != tt.wantMode {
				t.Errorf("RollModeFor = %q, want %q", got, tt.wantMode)
			}
		})
	}
}
