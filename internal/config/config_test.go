package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	redisclient "github.com/KirkDiggler/deltagreen-api/internal/redis"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{GRPCPort: 50051},
		Redis:   RedisConfig{Endpoint: "localhost:6379", Mode: "single", PoolSize: 10},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Rules: RulesConfig{
			DefaultRollMode:         "publicroll",
			SkillImprovementFormula: "1d4",
			RollLogTTL:              time.Hour,
			NonLethalMethod:         "digits",
		},
		I18n: I18nConfig{Locale: "en-US"},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	assert.True(t, errors.IsInvalidArgument(cfg.Validate()))
}

func TestValidateCollectsEveryField(t *testing.T) {
	cfg := validConfig()
	cfg.Server.GRPCPort = 0
	cfg.Redis.Endpoint = " , "
	cfg.Logging.Level = "verbose"
	cfg.Rules.DefaultRollMode = "shout"
	cfg.Rules.SkillImprovementFormula = "2d6"
	cfg.I18n.Locale = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	for _, field := range []string{
		"server.grpc_port",
		"redis.endpoint",
		"logging.level",
		"rules.default_roll_mode",
		"rules.skill_improvement_formula",
		"i18n.locale",
	} {
		assert.Contains(t, err.Error(), field)
	}
	assert.NotContains(t, err.Error(), "logging.format")
}

func TestRedisEndpoints(t *testing.T) {
	r := RedisConfig{Endpoint: "a:6379, b:6379,,c:6379", Mode: "cluster", PoolSize: 4, UseTLS: true}
	assert.Equal(t, []string{"a:6379", "b:6379", "c:6379"}, r.Endpoints())

	opts := r.Options()
	assert.Equal(t, redisclient.ModeCluster, opts.Mode)
	assert.Equal(t, 4, opts.PoolSize)
	assert.True(t, opts.UseTLS)
}

func TestRulesPolicy(t *testing.T) {
	p := RulesConfig{
		DefaultRollMode:   "gmroll",
		KeepSanityPrivate: true,
		NonLethalMethod:   "legacy",
	}.Policy()

	assert.Equal(t, chat.RollModeGM, p.DefaultRollMode)
	assert.True(t, p.HideSanityFromPlayers)
	assert.Equal(t, checks.NonLethalLegacy, p.NonLethalMethod)

	assert.Equal(t, checks.DefaultPolicy(), RulesConfig{}.Policy())
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":9090", ServerConfig{GRPCPort: 9090}.Addr())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, "localhost:6379", cfg.Redis.Endpoint)
	assert.Equal(t, "1d4", cfg.Rules.SkillImprovementFormula)
	assert.Equal(t, 24*time.Hour, cfg.Rules.RollLogTTL)
	assert.Equal(t, "en-US", cfg.I18n.Locale)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dgapi.yaml")
	err := os.WriteFile(path, []byte(`
server:
  grpc_port: 6000
redis:
  endpoint: redis:6379
logging:
  level: debug
  format: console
rules:
  default_roll_mode: gmroll
  keep_sanity_private: true
  skill_improvement_formula: 1d3
  roll_log_ttl: 30m
i18n:
  locale: fr-FR
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.GRPCPort)
	assert.Equal(t, "redis:6379", cfg.Redis.Endpoint)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "1d3", cfg.Rules.SkillImprovementFormula)
	assert.Equal(t, 30*time.Minute, cfg.Rules.RollLogTTL)
	assert.True(t, cfg.Rules.KeepSanityPrivate)
	assert.Equal(t, "fr-FR", cfg.I18n.Locale)
	assert.Equal(t, "digits", cfg.Rules.NonLethalMethod)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DGAPI_SERVER_GRPC_PORT", "7000")
	t.Setenv("DGAPI_RULES_KEEP_SANITY_PRIVATE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.GRPCPort)
	assert.True(t, cfg.Rules.KeepSanityPrivate)
}

func TestLoadFromViperOverride(t *testing.T) {
	v := New()
	v.Set("server.grpc_port", 8123)

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Server.GRPCPort)
}

func TestPortRangeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(-1000, 70000).Draw(t, "port")
		cfg := validConfig()
		cfg.Server.GRPCPort = port

		err := cfg.Validate()
		if port >= 1 && port <= 65535 {
			if err != nil {
				t.Fatalf("port %d rejected: %v", port, err)
			}
		} else if err == nil {
			t.Fatalf("port %d accepted", port)
		}
	})
}

func TestImprovementFormulaProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		formula := rapid.SampledFrom([]string{"1", "1d3", "1d4", "1d4-1", "1d6", "", "d4"}).Draw(t, "formula")
		cfg := validConfig()
		cfg.Rules.SkillImprovementFormula = formula

		valid := formula == "1" || formula == "1d3" || formula == "1d4" || formula == "1d4-1"
		if err := cfg.Validate(); (err == nil) != valid {
			t.Fatalf("formula %q: valid=%v err=%v", formula, valid, err)
		}
	})
}
