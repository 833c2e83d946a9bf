package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompts(t *testing.T) {
	for _, key := range []string{"tailor_document", "tailor_document_strict", "junior_constraint",
		"heal_bullet", "transpose_skills"} {
		_, err := Get("synthesis.json", key)
		require.NoError(t, err, key)
	}

	prompt, err := Get("synthesis.json", "tailor_document")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Facts}}")

	prompt, err = Get("extraction.json", "extract_keywords")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
}

func TestGetUnknownKey(t *testing.T) {
	_, err := Get("synthesis.json", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	out := Format("Job: {{.Title}} at {{.Company}}", map[string]string{
		"Title":   "Engineer",
		"Company": "Initech",
	})

	assert.Equal(t, "Job: Engineer at Initech", out)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	out := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})

	assert.Equal(t, "x and {{.Unknown}}", out)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("synthesis.json", "missing") })
	assert.NotPanics(t, func() { MustGet("synthesis.json", "heal_bullet") })
}
