// Package config loads scorer configuration from a file, the environment and CLI flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigName is looked up in the current directory when no --config is given.
	DefaultConfigName = "ats-scorer"
	// EnvPrefix namespaces environment overrides, e.g. ATS_SERVER_PORT.
	EnvPrefix = "ATS"
)

// Config is the full scorer configuration.
type Config struct {
	Weights         types.ScoringWeights            `mapstructure:"weights"`
	Tenants         map[string]types.ScoringWeights `mapstructure:"tenants"`
	Server          ServerConfig                    `mapstructure:"server"`
	DatabaseURL     string                          `mapstructure:"database_url"`
	JWT             JWTConfig                       `mapstructure:"jwt"`
	RateLimit       RateLimitConfig                 `mapstructure:"rate_limit"`
	Log             LogConfig                       `mapstructure:"log"`
	TaxonomyFile    string                          `mapstructure:"taxonomy_file"`
	DefaultIndustry string                          `mapstructure:"default_industry"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	// Parallelism bounds concurrent scoring in batch requests.
	Parallelism int `mapstructure:"parallelism" validate:"gte=1,lte=64"`
}

// RateLimitConfig throttles API clients. Clients are keyed by tenant, or by IP without auth.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"gte=0"`
	Burst             int  `mapstructure:"burst" validate:"gte=0"`
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Debug bool   `mapstructure:"debug"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// Option customizes Load.
type Option func(*viper.Viper) error

// WithFlag binds a command-line flag to a configuration key. A flag that was set on the
// command line wins over file and environment values.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
		return nil
	}
}

// flatEnv maps configuration keys to the unprefixed environment names also accepted.
var flatEnv = map[string]string{
	"weights.skills":       "SCORING_WEIGHTS_SKILLS",
	"weights.experience":   "SCORING_WEIGHTS_EXPERIENCE",
	"weights.education":    "SCORING_WEIGHTS_EDUCATION",
	"weights.format":       "SCORING_WEIGHTS_FORMAT",
	"weights.keywords":     "SCORING_WEIGHTS_KEYWORDS",
	"database_url":         "DATABASE_URL",
	"jwt.secret":           "JWT_SECRET",
	"jwt.expiration_hours": "JWT_EXPIRATION_HOURS",
	"log.level":            "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	w := types.DefaultWeights()
	v.SetDefault("weights.skills", w.SkillsMatch)
	v.SetDefault("weights.experience", w.ExperienceRelevance)
	v.SetDefault("weights.education", w.EducationAlignment)
	v.SetDefault("weights.format", w.FormatStructure)
	v.SetDefault("weights.keywords", w.KeywordOptimization)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.parallelism", 4)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 600)
	v.SetDefault("rate_limit.burst", 60)

	v.SetDefault("database_url", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", DefaultJWTExpirationHours)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.level", "")
	v.SetDefault("taxonomy_file", "")
	v.SetDefault("default_industry", "general")
}

// Load reads configuration. When path is empty an optional ats-scorer.yaml in the current
// directory is used; an explicit path must exist. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range flatEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if strings.EqualFold(cfg.Log.Level, "debug") {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the default weights, every tenant's weights and the server and JWT settings.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("config error: weights: %w", err)
	}
	for name, w := range c.Tenants {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config error: tenant name cannot be empty")
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("config error: tenant %s: %w", name, err)
		}
	}

	validate := validator.New()
	if err := validate.Struct(c.Server); err != nil {
		return fmt.Errorf("config error: server: %w", err)
	}
	if err := validate.Struct(c.RateLimit); err != nil {
		return fmt.Errorf("config error: rate_limit: %w", err)
	}
	if err := validate.Struct(c.Log); err != nil {
		return fmt.Errorf("config error: log: %w", err)
	}
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// TenantWeights returns the weights for a tenant and whether the tenant is configured.
func (c *Config) TenantWeights(tenant string) (types.ScoringWeights, bool) {
	w, ok := c.Tenants[strings.ToLower(tenant)]
	return w, ok
}
