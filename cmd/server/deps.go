package main

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/config"
	dgdice "github.com/KirkDiggler/deltagreen-api/internal/dice"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/i18n"
	"github.com/KirkDiggler/deltagreen-api/internal/observability"
	"github.com/KirkDiggler/deltagreen-api/internal/orchestrators/check"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/idgen"
	"github.com/KirkDiggler/deltagreen-api/internal/repositories/agent"
	rolllog "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log"
)

// loadConfig reads --config and applies any flags bound onto v
func loadConfig(v *viper.Viper) (config.Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, errors.Wrapf(err, "reading config file %s", configPath)
		}
	}
	return config.LoadFromViper(v)
}

// stack holds the pieces every command builds the orchestrator from
type stack struct {
	cfg         config.Config
	logger      *zap.Logger
	agentRepo   agent.Repository
	rollLogRepo rolllog.Repository
	prompter    checks.Prompter
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	return logger, nil
}

func (s *stack) localizer() (*i18n.Localizer, error) {
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalogs")
	}
	return bundle.Localizer(s.cfg.I18n.Locale), nil
}

// orchestrator wires the check service. Rolls land in the roll log and
// the process log.
func (s *stack) orchestrator(localizer checks.Localizer) (check.Service, error) {
	evaluator, err := dgdice.NewEvaluator(&dgdice.Config{
		Roller: dice.DefaultRoller,
		Logger: s.logger.Named("dice"),
	})
	if err != nil {
		return nil, err
	}

	sink := chat.MultiSink{
		rolllog.NewSink(s.rollLogRepo, s.cfg.Rules.RollLogTTL),
		chat.NewLoggerSink(s.logger.Named("chat")),
	}

	return check.NewOrchestrator(&check.Config{
		AgentRepo:          s.agentRepo,
		RollLogRepo:        s.rollLogRepo,
		Evaluator:          evaluator,
		Localizer:          localizer,
		Sink:               sink,
		EventBus:           events.NewBus(),
		IDGenerator:        idgen.NewPrefixed(idgen.PrefixRoll),
		Prompter:           s.prompter,
		Policy:             s.cfg.Rules.Policy(),
		ImprovementFormula: s.cfg.Rules.SkillImprovementFormula,
		Logger:             s.logger.Named("check"),
	})
}
