package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Providers, 3)
	assert.Equal(t, "ollama", cfg.Providers[0].Name)
	assert.Equal(t, "gemini", cfg.Providers[1].Name)
	assert.Equal(t, "groq", cfg.Providers[2].Name)
	assert.InDelta(t, 0.70, cfg.Thresholds.High, 1e-9)
	assert.InDelta(t, 0.40, cfg.Thresholds.Medium, 1e-9)
	assert.InDelta(t, 0.30, cfg.Thresholds.Minimum, 1e-9)
	assert.InDelta(t, 0.80, cfg.Healing.MinCoverage, 1e-9)
	assert.Equal(t, 3, cfg.Healing.MaxIterations)
	assert.Equal(t, 30*time.Second, cfg.Providers[0].Timeout())
	assert.Equal(t, time.Minute, cfg.Cooldown())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "thresholds": {"high": 0.8, "medium": 0.5, "minimum": 0.2},
	  "top_experiences": 4
	}`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.InDelta(t, 0.8, cfg.Thresholds.High, 1e-9)
	assert.Equal(t, 4, cfg.TopExperiences)
	assert.Len(t, cfg.Providers, 3, "unset sections keep their defaults")
	assert.Equal(t, 3, cfg.FailureThreshold)
}

func TestLoadRejectsInvertedThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "thresholds": {"high": 0.3, "medium": 0.6, "minimum": 0.1}
	}`), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "providers": [{"name": "openai", "model": "gpt-4", "timeout_seconds": 30}]
	}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateVerbPolicyNeedsSubstitutes(t *testing.T) {
	cfg := Default()
	cfg.Vocabulary["junior"] = VocabularyRules{ForbiddenVerbs: []string{"led"}}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no substitutes")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
