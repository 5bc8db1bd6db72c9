// Package check implements the check orchestrator: the flow from a
// player's roll request to a chat message and the agent updates it
// triggers.
package check

//go:generate mockgen -destination=mock/mock_service.go -package=checkmock github.com/KirkDiggler/deltagreen-api/internal/orchestrators/check Service

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.uber.org/zap"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/idgen"
	"github.com/KirkDiggler/deltagreen-api/internal/repositories/agent"
	rolllog "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log"
)

// Skill improvement formulas
const (
	ImprovementFlat       = "1"
	ImprovementD3         = "1d3"
	ImprovementD4         = "1d4"
	ImprovementD4MinusOne = "1d4-1"

	DefaultImprovementFormula = ImprovementD4
)

// ImprovementFormulas lists the accepted improvement formulas
var ImprovementFormulas = []string{ImprovementFlat, ImprovementD3, ImprovementD4, ImprovementD4MinusOne}

// Service defines the interface for check operations
type Service interface {
	// RollCheck constructs, adjusts, evaluates and reports one check.
	// A dismissed dialog returns Canceled with a nil error.
	RollCheck(ctx context.Context, input *RollCheckInput) (*RollCheckOutput, error)

	// ApplySkillImprovements rolls a gain for every skill marked as
	// failed and clears the marks.
	ApplySkillImprovements(ctx context.Context, input *ApplySkillImprovementsInput) (*ApplySkillImprovementsOutput, error)

	// Roll log access
	GetRollLog(ctx context.Context, input *GetRollLogInput) (*GetRollLogOutput, error)
	ClearRollLog(ctx context.Context, input *ClearRollLogInput) (*ClearRollLogOutput, error)
}

// Config holds the dependencies for the check orchestrator
type Config struct {
	AgentRepo   agent.Repository
	RollLogRepo rolllog.Repository
	Evaluator   checks.DiceEvaluator
	Localizer   checks.Localizer
	Sink        chat.Sink
	EventBus    events.EventBus
	IDGenerator idgen.Generator

	// Prompter answers interactive rolls. Optional.
	Prompter checks.Prompter

	// MessageIDGenerator defaults to prefixed message ids
	MessageIDGenerator idgen.Generator
	Clock              clock.Clock
	Policy             checks.Policy
	ImprovementFormula string
	Logger             *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.AgentRepo == nil {
		vb.RequiredField("AgentRepo")
	}
	if c.RollLogRepo == nil {
		vb.RequiredField("RollLogRepo")
	}
	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}
	if c.Localizer == nil {
		vb.RequiredField("Localizer")
	}
	if c.Sink == nil {
		vb.RequiredField("Sink")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ImprovementFormula != "" {
		errors.ValidateEnum("ImprovementFormula", c.ImprovementFormula, ImprovementFormulas, vb)
	}

	return vb.Build()
}

type orchestrator struct {
	agentRepo          agent.Repository
	rollLogRepo        rolllog.Repository
	evaluator          checks.DiceEvaluator
	localizer          checks.Localizer
	resolver           *checks.Resolver
	reporter           *checks.Reporter
	sink               chat.Sink
	prompter           checks.Prompter
	eventBus           events.EventBus
	idGen              idgen.Generator
	msgIDGen           idgen.Generator
	clock              clock.Clock
	policy             checks.Policy
	improvementFormula string
	logger             *zap.Logger

	// agentMu serializes read-modify-write cycles on agent sheets
	agentMu sync.Mutex
}

// NewOrchestrator creates a new check orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	msgIDGen := cfg.MessageIDGenerator
	if msgIDGen == nil {
		msgIDGen = idgen.NewPrefixed(idgen.PrefixMessage)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	formula := cfg.ImprovementFormula
	if formula == "" {
		formula = DefaultImprovementFormula
	}

	reporter, err := checks.NewReporter(&checks.ReporterConfig{
		Localizer:   cfg.Localizer,
		Policy:      cfg.Policy,
		Sink:        cfg.Sink,
		IDGenerator: msgIDGen,
		Clock:       clk,
	})
	if err != nil {
		return nil, err
	}

	o := &orchestrator{
		agentRepo:          cfg.AgentRepo,
		rollLogRepo:        cfg.RollLogRepo,
		evaluator:          cfg.Evaluator,
		localizer:          cfg.Localizer,
		resolver:           checks.NewResolver(cfg.Localizer),
		reporter:           reporter,
		sink:               cfg.Sink,
		prompter:           cfg.Prompter,
		eventBus:           cfg.EventBus,
		idGen:              cfg.IDGenerator,
		msgIDGen:           msgIDGen,
		clock:              clk,
		policy:             cfg.Policy,
		improvementFormula: formula,
		logger:             logger,
	}

	cfg.EventBus.SubscribeFunc(rpgtoolkit.EventCheckResolved, 0, o.handleCheckResolved)

	return o, nil
}

// RollCheck runs construct, dialog, evaluate and report for one check
func (o *orchestrator) RollCheck(ctx context.Context, input *RollCheckInput) (*RollCheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("agent_id", input.AgentID, vb)
	errors.ValidateRequired("kind", input.Kind, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	rollMode, err := chat.ParseRollMode(input.RollMode)
	if err != nil {
		return nil, err
	}

	agentOut, err := o.agentRepo.Get(ctx, agent.GetInput{ID: input.AgentID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get agent %s", input.AgentID)
	}
	sheet := agentOut.Agent

	checkInput, err := o.buildCheckInput(sheet, input, rollMode)
	if err != nil {
		return nil, err
	}

	check, err := checks.NewCheck(checkInput, o.resolver)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s check", checkInput.Kind)
	}

	prompter, err := o.prompterFor(input, rollMode)
	if err != nil {
		return nil, err
	}
	if prompter != nil {
		if err := checks.Prompt(ctx, check, prompter, o.policy, input.IsGM); err != nil {
			if errors.Is(err, checks.ErrDialogCanceled) {
				o.logger.Debug("check dialog dismissed",
					zap.String("agent_id", sheet.ID),
					zap.String("kind", checkInput.Kind.String()),
				)
				return &RollCheckOutput{Canceled: true, RollID: checkInput.ID, Kind: checkInput.Kind}, nil
			}
			return nil, errors.Wrap(err, "failed to adjust check")
		}
	}

	if err := check.Evaluate(ctx, o.evaluator); err != nil {
		return nil, err
	}

	msg, err := o.reporter.ToChat(ctx, check, checks.ReportOptions{Speaker: input.Speaker, IsGM: input.IsGM})
	if err != nil {
		return nil, err
	}

	output := describe(check)
	output.Message = msg

	if err := o.publishResolved(ctx, sheet, check, checkInput.Key, output); err != nil {
		return nil, err
	}

	o.logger.Info("check reported",
		zap.String("roll_id", output.RollID),
		zap.String("agent_id", sheet.ID),
		zap.String("kind", output.Kind.String()),
		zap.String("key", checkInput.Key),
		zap.Int("total", output.Total),
		zap.Int("target", output.Target+output.Modifier),
		zap.String("outcome", output.Outcome.String()),
		zap.String("visibility", string(msg.Visibility)),
	)

	return output, nil
}

func (o *orchestrator) buildCheckInput(
	sheet *deltagreen.Agent,
	input *RollCheckInput,
	rollMode chat.RollMode,
) (checks.CheckInput, error) {
	var weapon *deltagreen.Weapon
	if input.ItemID != "" {
		w, ok := sheet.Weapon(input.ItemID)
		if !ok {
			return checks.CheckInput{}, errors.NotFoundf("weapon %s not found on agent %s", input.ItemID, sheet.ID)
		}
		weapon = w
	}

	kind, err := checks.ParseKind(input.Kind, weapon)
	if err != nil {
		return checks.CheckInput{}, err
	}
	if kind.NeedsWeapon() && weapon == nil {
		return checks.CheckInput{}, errors.InvalidArgumentf("%s checks need an item_id", kind)
	}

	key, trainingName := input.Key, input.TrainingName
	if input.TrainingID != "" {
		training, ok := sheet.SpecialTraining(input.TrainingID)
		if !ok {
			return checks.CheckInput{}, errors.NotFoundf("special training %s not found on agent %s", input.TrainingID, sheet.ID)
		}
		kind = checks.KindSpecialTraining
		key, trainingName = training.Attribute, training.Name
	}

	return checks.CheckInput{
		ID:              o.idGen.Generate(),
		Kind:            kind,
		Key:             key,
		Agent:           sheet,
		Weapon:          weapon,
		TrainingName:    trainingName,
		RollMode:        rollMode,
		NonLethalMethod: o.policy.NonLethalMethod,
		SuccessLoss:     input.SuccessLoss,
		FailedLoss:      input.FailedLoss,
	}, nil
}

// prompterFor returns the configured prompter for interactive rolls, a
// preset answer when the request carries adjustments, or nil when there
// is nothing to ask.
func (o *orchestrator) prompterFor(input *RollCheckInput, rollMode chat.RollMode) (checks.Prompter, error) {
	if input.Interactive {
		if o.prompter == nil {
			return nil, errors.FailedPrecondition("interactive rolls need a prompter")
		}
		return o.prompter, nil
	}

	preset := &presetPrompter{
		modifier: input.Modifier,
		rollMode: rollMode,
		outer:    input.OuterModifier,
		inner:    input.InnerModifier,
	}
	if preset.empty() {
		return nil, nil
	}
	return preset, nil
}

func describe(check checks.Check) *RollCheckOutput {
	base := check.Base()
	total, _ := base.Total()
	out := &RollCheckOutput{
		RollID:   base.ID(),
		Kind:     base.Kind(),
		Formula:  base.Formula(),
		Total:    total,
		Modifier: base.Modifier(),
		Result:   base.Result(),
	}

	switch c := check.(type) {
	case *checks.LethalityCheck:
		out.Label = c.Label()
		out.Target = c.Target()
		out.Degraded = c.Degraded()
		out.Outcome = c.Outcome()
		out.Lethal, _ = c.IsLethal()
		if nl, ok := c.NonLethalDamage(); ok {
			out.NonLethal = &nl
		}
		out.SideEffects = c.Verdict().SideEffects
	case *checks.PercentileCheck:
		out.Label = c.Label()
		out.Target = c.Target()
		out.Degraded = c.Degraded()
		out.Outcome = c.Outcome()
		out.Inhuman = c.IsInhuman()
		out.SideEffects = c.Verdict().SideEffects
	case *checks.DamageRoll:
		out.Label = c.Label()
	case *checks.SanityDamageRoll:
		out.Label = c.SuccessLoss() + " / " + c.FailedLoss()
		out.SanityLow, out.SanityHigh, _ = c.Results()
	}
	return out
}

func (o *orchestrator) publishResolved(
	ctx context.Context,
	sheet *deltagreen.Agent,
	check checks.Check,
	key string,
	output *RollCheckOutput,
) error {
	event := rpgtoolkit.NewCheckResolvedEvent(sheet, check.Base().Weapon(), output.RollID)
	event.Kind = output.Kind
	event.Key = key
	event.Total = output.Total
	event.Outcome = output.Outcome
	event.SideEffects = output.SideEffects

	if err := o.eventBus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish %s", rpgtoolkit.EventCheckResolved)
	}
	return nil
}

// handleCheckResolved applies the recommended side effects to the
// stored agent.
func (o *orchestrator) handleCheckResolved(ctx context.Context, e events.Event) error {
	event, ok := e.(*rpgtoolkit.CheckResolvedEvent)
	if !ok || len(event.SideEffects) == 0 {
		return nil
	}

	o.agentMu.Lock()
	defer o.agentMu.Unlock()

	out, err := o.agentRepo.Get(ctx, agent.GetInput{ID: event.AgentID})
	if err != nil {
		return errors.Wrapf(err, "failed to load agent %s for side effects", event.AgentID)
	}

	changed := false
	for _, effect := range event.SideEffects {
		if effect.Apply(out.Agent) {
			changed = true
			o.logger.Debug("side effect applied",
				zap.String("roll_id", event.RollID),
				zap.String("agent_id", event.AgentID),
				zap.String("kind", string(effect.Kind)),
				zap.String("skill", effect.SkillKey),
				zap.Bool("typed", effect.Typed),
			)
		}
	}
	if !changed {
		return nil
	}

	if _, err := o.agentRepo.Update(ctx, agent.UpdateInput{Agent: out.Agent}); err != nil {
		return errors.Wrapf(err, "failed to save side effects for agent %s", event.AgentID)
	}
	return nil
}

// GetRollLog returns the recent messages of one channel, public by default
func (o *orchestrator) GetRollLog(ctx context.Context, input *GetRollLogInput) (*GetRollLogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.rollLogRepo.Get(ctx, rolllog.GetInput{
		AgentID: input.AgentID,
		Channel: channelOrDefault(input.Channel),
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get roll log for agent %s", input.AgentID)
	}

	return &GetRollLogOutput{Messages: out.Messages}, nil
}

// ClearRollLog deletes one channel of an agent's roll log
func (o *orchestrator) ClearRollLog(ctx context.Context, input *ClearRollLogInput) (*ClearRollLogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.rollLogRepo.Delete(ctx, rolllog.DeleteInput{
		AgentID: input.AgentID,
		Channel: channelOrDefault(input.Channel),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clear roll log for agent %s", input.AgentID)
	}

	return &ClearRollLogOutput{MessagesDeleted: out.MessagesDeleted}, nil
}

func channelOrDefault(channel string) string {
	if channel == "" {
		return chat.ChannelPublic
	}
	return channel
}

func (o *orchestrator) now() time.Time {
	return o.clock.Now()
}
