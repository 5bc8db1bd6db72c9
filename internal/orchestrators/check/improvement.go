package check

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/repositories/agent"
)

// ApplySkillImprovements improves every failed skill of an agent. Base
// skills come first, then typed skills, each in key order, and the
// rolled gains are assigned in that order.
func (o *orchestrator) ApplySkillImprovements(
	ctx context.Context,
	input *ApplySkillImprovementsInput,
) (*ApplySkillImprovementsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("agent_id", input.AgentID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.agentMu.Lock()
	defer o.agentMu.Unlock()

	agentOut, err := o.agentRepo.Get(ctx, agent.GetInput{ID: input.AgentID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get agent %s", input.AgentID)
	}
	sheet := agentOut.Agent

	output := &ApplySkillImprovementsOutput{Formula: o.improvementFormula}

	base, typed := sheet.FailedSkills()
	count := len(base) + len(typed)
	if count == 0 {
		return output, nil
	}

	gains, err := o.rollImprovements(ctx, count)
	if err != nil {
		return nil, err
	}

	for i, key := range base {
		skill, _ := sheet.Skill(key)
		fallback := skill.Label
		if fallback == "" {
			fallback = key
		}
		output.Improvements = append(output.Improvements, Improvement{
			SkillKey: key,
			Label:    o.localizer.LocalizeWithFallback("DG.Skills."+key, fallback),
			Gain:     gains[i],
		})
		sheet.ImproveSkill(key, false, gains[i])
	}
	for i, key := range typed {
		skill, _ := sheet.TypedSkill(key)
		gain := gains[len(base)+i]
		output.Improvements = append(output.Improvements, Improvement{
			SkillKey: key,
			Typed:    true,
			Label:    skill.DisplayName(),
			Gain:     gain,
		})
		sheet.ImproveSkill(key, true, gain)
	}

	if _, err := o.agentRepo.Update(ctx, agent.UpdateInput{Agent: sheet}); err != nil {
		return nil, errors.Wrapf(err, "failed to save improvements for agent %s", sheet.ID)
	}

	msg := o.improvementMessage(sheet.ID, speakerOr(input.Speaker, sheet.Name), output)
	if err := o.sink.Send(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "failed to send improvements to chat")
	}
	output.Message = msg

	o.logger.Info("skill improvements applied",
		zap.String("agent_id", sheet.ID),
		zap.String("formula", o.improvementFormula),
		zap.Int("skills", len(output.Improvements)),
	)

	return output, nil
}

// rollImprovements returns one gain per failed skill. The flat formula
// rolls nothing.
func (o *orchestrator) rollImprovements(ctx context.Context, count int) ([]int, error) {
	gains := make([]int, count)

	var sides, offset int
	switch o.improvementFormula {
	case ImprovementFlat:
		for i := range gains {
			gains[i] = 1
		}
		return gains, nil
	case ImprovementD3:
		sides = 3
	case ImprovementD4:
		sides = 4
	case ImprovementD4MinusOne:
		sides, offset = 4, -1
	default:
		return nil, errors.Internalf("unknown improvement formula %q", o.improvementFormula)
	}

	result, err := o.evaluator.Evaluate(ctx, fmt.Sprintf("%dd%d", count, sides))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll skill improvements")
	}

	dice := result.Dice()
	if len(dice) != 1 || len(dice[0].Values) != count {
		return nil, errors.Internalf("expected %d improvement dice, got %v", count, dice)
	}
	for i, v := range dice[0].Values {
		gains[i] = v + offset
	}
	return gains, nil
}

func (o *orchestrator) improvementMessage(agentID, speaker string, output *ApplySkillImprovementsOutput) *chat.Message {
	parts := make([]string, 0, len(output.Improvements))
	total := 0
	for _, imp := range output.Improvements {
		parts = append(parts, fmt.Sprintf("%s: +%d%%", imp.Label, imp.Gain))
		total += imp.Gain
	}

	flavor := fmt.Sprintf("%s +%s%%:", o.localizer.Localize("DG.Skills.ApplySkillImprovementsChatFlavor"), output.Formula)

	msg := &chat.Message{
		ID:         o.msgIDGen.Generate(),
		AgentID:    agentID,
		Speaker:    speaker,
		Flavor:     flavor,
		Content:    strings.Join(parts, ", "),
		Visibility: o.policy.RollModeFor(checks.KindUnspecified, "", "", false),
		Kind:       chat.MessageKindImprovement,
		Total:      total,
		CreatedAt:  o.now(),
	}
	if output.Formula != ImprovementFlat {
		msg.Sound = chat.DiceSound
	}
	return msg
}

func speakerOr(speaker, fallback string) string {
	if speaker != "" {
		return speaker
	}
	return fallback
}
