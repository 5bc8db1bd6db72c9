package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/deltagreen-api/internal/config"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
	"github.com/KirkDiggler/deltagreen-api/internal/repositories/agent"
	rolllog "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log"
)

// readSheet loads an agent from a YAML sheet. A sheet without an id
// takes its file name.
func readSheet(path string) (*deltagreen.Agent, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading agent sheet %s", path)
	}

	var a deltagreen.Agent
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, errors.InvalidArgumentf("parsing agent sheet %s: %v", path, err)
	}
	if a.ID == "" {
		a.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &a, nil
}

func writeSheet(path string, a *deltagreen.Agent) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "encoding agent sheet")
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return errors.Wrapf(err, "writing agent sheet %s", path)
	}
	return nil
}

// localStack builds an in-memory stack holding the sheet's agent
func localStack(ctx context.Context, sheetPath string) (*stack, *deltagreen.Agent, error) {
	cfg, err := loadConfig(newLocalViper())
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	sheet, err := readSheet(sheetPath)
	if err != nil {
		return nil, nil, err
	}

	clk := clock.New()
	agents := agent.NewInMemory(clk)
	if _, err := agents.Create(ctx, agent.CreateInput{Agent: sheet}); err != nil {
		return nil, nil, err
	}

	return &stack{
		cfg:         cfg,
		logger:      logger,
		agentRepo:   agents,
		rollLogRepo: rolllog.NewInMemory(clk, cfg.Rules.RollLogTTL, 0),
	}, sheet, nil
}

// newLocalViper defaults local tools to quiet console logging
func newLocalViper() *viper.Viper {
	v := config.New()
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.level", "warn")
	return v
}

// saveAgent writes the stored agent back over the sheet
func saveAgent(ctx context.Context, s *stack, id, path string) error {
	out, err := s.agentRepo.Get(ctx, agent.GetInput{ID: id})
	if err != nil {
		return err
	}
	return writeSheet(path, out.Agent)
}
