// Package config loads server settings from a YAML file with DGAPI_
// environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/orchestrators/check"
	redisclient "github.com/KirkDiggler/deltagreen-api/internal/redis"
)

// EnvPrefix is prepended to every environment override, e.g. DGAPI_REDIS_ENDPOINT
const EnvPrefix = "DGAPI"

// ServerConfig holds gRPC listener settings.
type ServerConfig struct {
	GRPCPort int `mapstructure:"grpc_port"`
}

// Addr returns the ":port" listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.GRPCPort)
}

// RedisConfig holds connection settings for the agent and roll log stores.
type RedisConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Mode     string `mapstructure:"mode"`
	PoolSize int    `mapstructure:"pool_size"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// Options converts the section into client options.
func (r RedisConfig) Options() *redisclient.Options {
	return &redisclient.Options{
		Mode:     redisclient.Mode(r.Mode),
		PoolSize: r.PoolSize,
		UseTLS:   r.UseTLS,
	}
}

// Endpoints splits a comma separated endpoint list.
func (r RedisConfig) Endpoints() []string {
	var out []string
	for _, e := range strings.Split(r.Endpoint, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is json or console.
	Format string `mapstructure:"format"`
}

// RulesConfig holds the table settings that shape how checks are shown.
type RulesConfig struct {
	DefaultRollMode         string        `mapstructure:"default_roll_mode"`
	KeepSanityPrivate       bool          `mapstructure:"keep_sanity_private"`
	SkillImprovementFormula string        `mapstructure:"skill_improvement_formula"`
	RollLogTTL              time.Duration `mapstructure:"roll_log_ttl"`
	NonLethalMethod         string        `mapstructure:"non_lethal_method"`
}

// Policy maps the rules section onto a checks.Policy.
func (r RulesConfig) Policy() checks.Policy {
	p := checks.DefaultPolicy()
	if r.DefaultRollMode != "" {
		p.DefaultRollMode = chat.RollMode(r.DefaultRollMode)
	}
	if r.NonLethalMethod != "" {
		p.NonLethalMethod = checks.NonLethalMethod(r.NonLethalMethod)
	}
	p.HideSanityFromPlayers = r.KeepSanityPrivate
	return p
}

// I18nConfig selects the catalog locale.
type I18nConfig struct {
	Locale string `mapstructure:"locale"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
	Rules   RulesConfig   `mapstructure:"rules"`
	I18n    I18nConfig    `mapstructure:"i18n"`
}

var (
	logLevels        = []string{"debug", "info", "warn", "error"}
	logFormats       = []string{"json", "console"}
	redisModes       = []string{string(redisclient.ModeSingle), string(redisclient.ModeCluster), string(redisclient.ModeSentinel)}
	nonLethalMethods = []string{string(checks.NonLethalDigits), string(checks.NonLethalLegacy)}
)

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.grpc_port", c.Server.GRPCPort, 1, 65535, vb)

	if len(c.Redis.Endpoints()) == 0 {
		vb.RequiredField("redis.endpoint")
	}
	if c.Redis.Mode != "" {
		errors.ValidateEnum("redis.mode", c.Redis.Mode, redisModes, vb)
	}
	if c.Redis.PoolSize < 0 {
		vb.InvalidField("redis.pool_size", "must not be negative")
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, logLevels, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, logFormats, vb)

	if c.Rules.DefaultRollMode != "" {
		if _, err := chat.ParseRollMode(c.Rules.DefaultRollMode); err != nil {
			vb.InvalidField("rules.default_roll_mode", err.Error())
		}
	}
	errors.ValidateEnum("rules.skill_improvement_formula", c.Rules.SkillImprovementFormula, check.ImprovementFormulas, vb)
	if c.Rules.NonLethalMethod != "" {
		errors.ValidateEnum("rules.non_lethal_method", c.Rules.NonLethalMethod, nonLethalMethods, vb)
	}
	if c.Rules.RollLogTTL < 0 {
		vb.InvalidField("rules.roll_log_ttl", "must not be negative")
	}

	errors.ValidateRequired("i18n.locale", c.I18n.Locale, vb)

	return vb.Build()
}

// Load reads path (optional), applies DGAPI_ environment overrides and
// defaults, then validates.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", path)
		}
	}
	return LoadFromViper(v)
}

// New returns a viper instance with defaults and env overrides bound.
// Callers may bind cobra flags onto it before LoadFromViper.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshalling config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)

	v.SetDefault("redis.endpoint", "localhost:6379")
	v.SetDefault("redis.mode", string(redisclient.ModeSingle))
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.use_tls", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("rules.default_roll_mode", string(chat.RollModePublic))
	v.SetDefault("rules.keep_sanity_private", false)
	v.SetDefault("rules.skill_improvement_formula", check.DefaultImprovementFormula)
	v.SetDefault("rules.roll_log_ttl", "24h")
	v.SetDefault("rules.non_lethal_method", string(checks.NonLethalDigits))

	v.SetDefault("i18n.locale", "en-US")
}
