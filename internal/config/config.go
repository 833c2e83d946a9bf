// Package config provides the injected configuration surface for the
// tailoring engine. All tuning knobs live here so runs stay independently
// testable; nothing in the core reads process-wide state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// ProviderConfig configures one inference provider in the fallback chain.
// Order in the Providers slice is priority order.
type ProviderConfig struct {
	Name           string `json:"name" validate:"required,oneof=ollama gemini groq"`
	Model          string `json:"model" validate:"required"`
	BaseURL        string `json:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=1"`
	// Tasks lists the task kinds the provider is eligible for. Empty means
	// eligible for everything.
	Tasks []string `json:"tasks,omitempty"`
}

// Timeout returns the per-call timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Thresholds holds the match-score tier boundaries and the warning floor.
type Thresholds struct {
	High    float64 `json:"high" validate:"gtefield=Medium,lte=1"`
	Medium  float64 `json:"medium" validate:"gtefield=Minimum,lte=1"`
	Minimum float64 `json:"minimum" validate:"gte=0,lte=1"`
}

// Healing bounds the self-healing loop.
type Healing struct {
	MinCoverage   float64 `json:"min_coverage" validate:"gte=0,lte=1"`
	MaxIterations int     `json:"max_iterations" validate:"gte=0"`
}

// VocabularyRules holds the anti-overqualification verb policy for one mode.
type VocabularyRules struct {
	ForbiddenVerbs  []string `json:"forbidden_verbs"`
	SubstituteVerbs []string `json:"substitute_verbs"`
}

// Config is the full configuration injected into a run.
type Config struct {
	Providers []ProviderConfig `json:"providers" validate:"required,min=1,dive"`

	Thresholds Thresholds `json:"thresholds"`
	Healing    Healing    `json:"healing"`

	// TopExperiences is how many experiences the synthesizer selects.
	TopExperiences int `json:"top_experiences" validate:"gte=1"`

	// MustHaveCategories are keyword categories that trigger a warning when
	// entirely uncovered by the profile.
	MustHaveCategories []string `json:"must_have_categories,omitempty"`

	// Vocabulary maps synthesis mode (senior, junior) to its verb policy.
	Vocabulary map[string]VocabularyRules `json:"vocabulary,omitempty"`

	// FailureThreshold is how many consecutive provider failures trigger a
	// cooldown; CooldownSeconds is how long the provider is then skipped.
	FailureThreshold int `json:"failure_threshold" validate:"gte=1"`
	CooldownSeconds  int `json:"cooldown_seconds" validate:"gte=0"`

	DatabaseURL string `json:"database_url,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`
}

// Cooldown returns the provider cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// Default returns the configuration matching the documented defaults.
func Default() *Config {
	return &Config{
		Providers: []ProviderConfig{
			{
				Name:           "ollama",
				Model:          "gemma3:4b",
				BaseURL:        "http://localhost:11434",
				TimeoutSeconds: 30,
				Tasks:          []string{"keyword_extraction", "scoring"},
			},
			{
				Name:           "gemini",
				Model:          "gemini-2.0-flash",
				TimeoutSeconds: 60,
			},
			{
				Name:           "groq",
				Model:          "llama-3.3-70b-versatile",
				BaseURL:        "https://api.groq.com/openai/v1",
				TimeoutSeconds: 60,
			},
		},
		Thresholds: Thresholds{High: 0.70, Medium: 0.40, Minimum: 0.30},
		Healing:    Healing{MinCoverage: 0.80, MaxIterations: 3},

		TopExperiences:     6,
		MustHaveCategories: []string{"hard_skill"},

		Vocabulary: map[string]VocabularyRules{
			"junior": {
				ForbiddenVerbs:  []string{"led", "directed", "headed", "owned", "managed", "oversaw"},
				SubstituteVerbs: []string{"built", "implemented", "delivered", "executed", "supported", "contributed to"},
			},
		},

		FailureThreshold: 3,
		CooldownSeconds:  60,
	}
}

// Load reads a JSON config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints plus the cross-field invariants the
// struct tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for mode, rules := range c.Vocabulary {
		if len(rules.ForbiddenVerbs) > 0 && len(rules.SubstituteVerbs) == 0 {
			return fmt.Errorf("config error: mode %q forbids verbs but provides no substitutes", mode)
		}
	}
	return nil
}
