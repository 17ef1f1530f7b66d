package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/datar-psa/textmetrics/bleu"
	"github.com/datar-psa/textmetrics/errorrate"
)

// Config holds all textmetrics CLI configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Output    string          `yaml:"output"` // "json" or "text"
	ErrorRate ErrorRateConfig `yaml:"errorrate"`
	BLEU      BLEUConfig      `yaml:"bleu"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Gemini    GeminiConfig    `yaml:"gemini"`
}

// ErrorRateConfig holds WER/CER settings.
type ErrorRateConfig struct {
	SkipNormalization bool    `yaml:"skip_normalization"`
	Undefined         string  `yaml:"undefined"` // "exclude", "cap" or "propagate"
	Cap               float64 `yaml:"cap"`
}

// BLEUConfig holds BLEU settings.
type BLEUConfig struct {
	MaxN    int       `yaml:"max_n"`
	Weights []float64 `yaml:"weights"`
}

// ClassifyConfig holds label evaluation settings.
type ClassifyConfig struct {
	Labels          []string `yaml:"labels"`
	Labeler         string   `yaml:"labeler"` // "none", "gemini" or "language"
	TaskDescription string   `yaml:"task_description"`
	MinConfidence   float64  `yaml:"min_confidence"`
	Fallback        string   `yaml:"fallback"`
}

// GeminiConfig holds Vertex AI settings for the Gemini and Cloud Natural Language providers.
type GeminiConfig struct {
	Model    string `yaml:"model"`
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Output:   "json",
		ErrorRate: ErrorRateConfig{
			Undefined: "exclude",
			Cap:       errorrate.DefaultCap,
		},
		BLEU: BLEUConfig{
			MaxN: bleu.DefaultMaxN,
		},
		Classify: ClassifyConfig{
			Labeler: "none",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv loads envFile if it exists and fills the Google Cloud project and
// region from GOOGLE_PROJECT_ID and GOOGLE_REGION when the config leaves them empty.
// Variables already set in the environment win over the file.
func (c *Config) ApplyEnv(envFile string) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	if c.Gemini.Project == "" {
		c.Gemini.Project = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if c.Gemini.Location == "" {
		c.Gemini.Location = getEnv("GOOGLE_REGION", "us-central1")
	}
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	switch c.Output {
	case "json", "text":
	default:
		return fmt.Errorf("output must be \"json\" or \"text\", got %q", c.Output)
	}

	if _, err := c.undefinedPolicy(); err != nil {
		return err
	}
	if c.ErrorRate.Cap <= 0 {
		return fmt.Errorf("errorrate.cap must be > 0, got %v", c.ErrorRate.Cap)
	}

	if err := c.BLEUOptions().Validate(); err != nil {
		return fmt.Errorf("bleu: %w", err)
	}

	switch c.Classify.Labeler {
	case "none", "gemini", "language":
	default:
		return fmt.Errorf("classify.labeler must be none, gemini, or language, got %q", c.Classify.Labeler)
	}
	if c.Classify.Labeler == "gemini" && len(c.Classify.Labels) == 0 {
		return fmt.Errorf("classify.labels must not be empty with the gemini labeler")
	}
	if c.Classify.MinConfidence < 0 || c.Classify.MinConfidence > 1 {
		return fmt.Errorf("classify.min_confidence must be between 0 and 1, got %v", c.Classify.MinConfidence)
	}

	// the language labeler authenticates with application default credentials
	if c.Classify.Labeler == "gemini" && c.Gemini.Project == "" {
		return fmt.Errorf("gemini.project must not be empty with the gemini labeler (set it or GOOGLE_PROJECT_ID)")
	}
	if c.Classify.Labeler == "gemini" && c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model must not be empty")
	}

	return nil
}

// ErrorRateOptions returns the errorrate options described by the config.
// Call Validate first; an unknown policy falls back to exclusion.
func (c *Config) ErrorRateOptions() errorrate.Options {
	policy, _ := c.undefinedPolicy()
	return errorrate.Options{
		SkipNormalization: c.ErrorRate.SkipNormalization,
		Undefined:         policy,
		Cap:               c.ErrorRate.Cap,
	}
}

// BLEUOptions returns the bleu options described by the config.
func (c *Config) BLEUOptions() bleu.Options {
	return bleu.Options{
		MaxN:    c.BLEU.MaxN,
		Weights: c.BLEU.Weights,
	}
}

func (c *Config) undefinedPolicy() (errorrate.UndefinedPolicy, error) {
	switch c.ErrorRate.Undefined {
	case "", "exclude":
		return errorrate.ExcludeUndefined, nil
	case "cap":
		return errorrate.CapUndefined, nil
	case "propagate":
		return errorrate.PropagateUndefined, nil
	default:
		return errorrate.ExcludeUndefined, fmt.Errorf("errorrate.undefined must be exclude, cap, or propagate, got %q", c.ErrorRate.Undefined)
	}
}

// ParseLogLevel converts a log_level value to a slog.Level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
