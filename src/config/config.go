package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Oudwins/zog"
	"github.com/chataigne/catalog-validator/src/validation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that provide defaults for CLI flags.
const (
	EnvConfigPath = "CATALOG_VALIDATOR_CONFIG"
	EnvProfile    = "CATALOG_VALIDATOR_PROFILE"
	EnvLogLevel   = "CATALOG_VALIDATOR_LOG_LEVEL"
)

// Config holds the tunable validation rules and report limits.
type Config struct {
	Profile            string       `yaml:"profile"`
	HighPriceThreshold float64      `yaml:"high_price_threshold"`
	SuggestionCutoff   float64      `yaml:"suggestion_cutoff"`
	Report             ReportConfig `yaml:"report"`
}

// ReportConfig controls how many entries the text report shows per section.
type ReportConfig struct {
	ErrorLimit      int `yaml:"error_limit"`
	WarningLimit    int `yaml:"warning_limit"`
	ImageGroupLimit int `yaml:"image_group_limit"`
	ImageNameLimit  int `yaml:"image_name_limit"`
}

// Default returns the canonical configuration.
func Default() Config {
	return Config{
		Profile:            "strict",
		HighPriceThreshold: 500,
		SuggestionCutoff:   0.6,
		Report: ReportConfig{
			ErrorLimit:      5,
			WarningLimit:    10,
			ImageGroupLimit: 3,
			ImageNameLimit:  3,
		},
	}
}

// Schema validates a loaded configuration.
var Schema = zog.Struct(zog.Shape{
	"profile": zog.String().Required().OneOf([]string{"strict", "lax"}, zog.Message("profile must be one of: strict, lax")),
	"highPriceThreshold": zog.Float64().Required(zog.Message("high_price_threshold must be > 0")).
		GT(0, zog.Message("high_price_threshold must be > 0")),
	"suggestionCutoff": zog.Float64().Required(zog.Message("suggestion_cutoff must be within (0, 1]")).
		GT(0, zog.Message("suggestion_cutoff must be within (0, 1]")).
		LTE(1, zog.Message("suggestion_cutoff must be within (0, 1]")),
	"report": zog.Struct(zog.Shape{
		"errorLimit":      zog.Int().Required(zog.Message("report.error_limit must be >= 1")).GTE(1, zog.Message("report.error_limit must be >= 1")),
		"warningLimit":    zog.Int().Required(zog.Message("report.warning_limit must be >= 1")).GTE(1, zog.Message("report.warning_limit must be >= 1")),
		"imageGroupLimit": zog.Int().Required(zog.Message("report.image_group_limit must be >= 1")).GTE(1, zog.Message("report.image_group_limit must be >= 1")),
		"imageNameLimit":  zog.Int().Required(zog.Message("report.image_name_limit must be >= 1")).GTE(1, zog.Message("report.image_name_limit must be >= 1")),
	}),
})

// LoadEnv loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the rules file at path over the defaults. An empty path falls
// back to $CATALOG_VALIDATOR_CONFIG, and to the defaults alone when unset.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against Schema.
func (c *Config) Validate() error {
	messages := validation.IssueMessages(Schema.Validate(c))
	if len(messages) == 0 {
		return nil
	}
	return errors.New("invalid config: " + strings.Join(messages, "; "))
}

// EnvOr returns the value of the environment variable key, or fallback when unset.
func EnvOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
