package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/idgen"
)

// ReporterConfig holds the Reporter dependencies
type ReporterConfig struct {
	Localizer   Localizer
	Policy      Policy
	Sink        chat.Sink
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures the required dependencies are present
func (c *ReporterConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Localizer == nil {
		vb.RequiredField("Localizer")
	}
	if c.Sink == nil {
		vb.RequiredField("Sink")
	}
	return vb.Build()
}

// Reporter formats evaluated checks into chat messages
type Reporter struct {
	localizer Localizer
	policy    Policy
	sink      chat.Sink
	idGen     idgen.Generator
	clock     clock.Clock
}

// NewReporter creates a Reporter
func NewReporter(cfg *ReporterConfig) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid reporter config")
	}

	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = idgen.NewPrefixed(idgen.PrefixMessage)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Reporter{
		localizer: cfg.Localizer,
		policy:    cfg.Policy,
		sink:      cfg.Sink,
		idGen:     idGen,
		clock:     clk,
	}, nil
}

// ReportOptions describes who is rolling
type ReportOptions struct {
	Speaker string
	IsGM    bool
}

// ToChat formats the check and hands it to the sink. The check moves
// to StateReported and cannot be reported again.
func (r *Reporter) ToChat(ctx context.Context, check Check, opts ReportOptions) (*chat.Message, error) {
	base := check.Base()
	if base.state == StateReported {
		return nil, errors.FailedPreconditionf("roll %s was already reported", base.id)
	}

	msg, err := r.Format(check, opts)
	if err != nil {
		return nil, err
	}

	if err := r.sink.Send(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "failed to send roll to chat")
	}

	base.state = StateReported
	return msg, nil
}

// Format renders an evaluated check without sending it
func (r *Reporter) Format(check Check, opts ReportOptions) (*chat.Message, error) {
	base := check.Base()
	total, ok := base.Total()
	if !ok {
		return nil, errors.Wrap(ErrNotEvaluated, "cannot report an unrolled check").WithMeta("roll_id", base.id)
	}

	msg := &chat.Message{
		ID:        r.idGen.Generate(),
		RollID:    base.id,
		Speaker:   opts.Speaker,
		Kind:      chat.MessageKindRoll,
		CheckKind: base.kind.String(),
		Total:     total,
		Sound:     chat.DiceSound,
		CreatedAt: r.clock.Now(),
	}
	if base.agent != nil {
		msg.AgentID = base.agent.ID
		if msg.Speaker == "" {
			msg.Speaker = base.agent.Name
		}
	}

	key := ""
	switch c := check.(type) {
	case *LethalityCheck:
		msg.Flavor, msg.Content = r.lethality(c)
	case *PercentileCheck:
		key = c.key
		msg.Flavor, msg.Content = r.percentile(c)
	case *DamageRoll:
		msg.Flavor, msg.Content = r.damage(c)
	case *SanityDamageRoll:
		msg.Flavor, msg.Content = r.sanityDamage(c)
	default:
		return nil, errors.Internalf("unsupported check type %T", check)
	}

	msg.Visibility = r.policy.RollModeFor(base.kind, key, base.rollMode, opts.IsGM)
	return msg, nil
}

func (r *Reporter) t(key string) string {
	return r.localizer.Localize(key)
}

func (r *Reporter) targetSuffix(target, modifier int) string {
	s := fmt.Sprintf("%s %d", r.t("DG.Roll.Target"), target+modifier)
	if modifier != 0 {
		s += fmt.Sprintf(" (%+d%%)", modifier)
	}
	return s
}

func (r *Reporter) percentile(c *PercentileCheck) (flavor, content string) {
	label := c.Label()
	if c.IsInhuman() {
		label += " [" + strings.ToUpper(r.t("DG.Roll.Inhuman")) + "]"
	}
	flavor = fmt.Sprintf("%s %s %s", r.t("DG.Roll.Rolling"), label, r.targetSuffix(c.Target(), c.modifier))

	total, _ := c.Total()
	return flavor, fmt.Sprintf("%s\n%s: %d", r.resultString(c.Outcome()), c.formula, total)
}

func (r *Reporter) resultString(outcome Outcome) string {
	result := r.t("DG.Roll.Failure")
	if outcome.Succeeded() {
		result = r.t("DG.Roll.Success")
	}
	if outcome.Critical() {
		return strings.ToUpper(r.t("DG.Roll.Critical")+" "+result) + "!"
	}
	return result
}

func (r *Reporter) lethality(c *LethalityCheck) (flavor, content string) {
	weaponName := ""
	if c.weapon != nil {
		weaponName = c.weapon.Name
	}
	flavor = fmt.Sprintf("%s %s %s %s %s",
		r.t("DG.Roll.Rolling"),
		strings.ToUpper(r.t("DG.Roll.Lethality")),
		r.t("DG.Roll.For"),
		strings.ToUpper(weaponName),
		r.targetSuffix(c.Target(), c.modifier),
	)

	result := r.t("DG.Roll.Failure")
	if lethal, _ := c.IsLethal(); lethal {
		result = strings.ToUpper(r.t("DG.Roll.Lethal"))
	}

	total, _ := c.Total()
	nl, _ := c.NonLethalDamage()
	content = strings.Join([]string{
		result,
		fmt.Sprintf("d100: %d", total),
		fmt.Sprintf("2d10 (d10 + d10): %d + %d = %d", nl.Die1, nl.Die2, nl.Total),
		fmt.Sprintf("%d (%d %s)", total, nl.Total, r.t("DG.Roll.Damage")),
	}, "\n")
	return flavor, content
}

func (r *Reporter) damage(d *DamageRoll) (flavor, content string) {
	total, _ := d.Total()
	if d.Label() == "" {
		flavor = fmt.Sprintf("Rolling DAMAGE for %s", strings.ToUpper(d.formula))
	} else {
		flavor = fmt.Sprintf("%s %s %s %s",
			r.t("DG.Roll.Rolling"),
			strings.ToUpper(r.t("DG.Roll.Damage")),
			r.t("DG.Roll.For"),
			d.Label(),
		)
	}
	return flavor, fmt.Sprintf("%s = %d", d.formula, total)
}

func (r *Reporter) sanityDamage(s *SanityDamageRoll) (flavor, content string) {
	pair := s.successLoss + " / " + s.failedLoss
	flavor = fmt.Sprintf("%s %s %s %s",
		r.t("DG.Roll.Rolling"),
		r.localizer.LocalizeWithFallback("DG.Generic.SanDamage", "SAN DAMAGE"),
		r.t("DG.Roll.For"),
		pair,
	)

	low, high, _ := s.Results()
	content = strings.Join([]string{
		pair,
		fmt.Sprintf("%s: %d", s.successLoss, low),
		fmt.Sprintf("%s: %d", s.failedLoss, high),
		fmt.Sprintf("%d / %d", low, high),
	}, "\n")
	return flavor, content
}
