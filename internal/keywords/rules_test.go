package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

func TestExtractWithRulesPortuguese(t *testing.T) {
	posting := `Vaga para Engenheiro de Dados.
Requisitos: experiência com Python, engenharia de dados, microsserviços,
metodologias ágeis e comunicação com stakeholders.`

	extracted := ExtractWithRules(posting, types.LanguagePT)

	assert.Equal(t, types.SourceRules, extracted.Source)
	assert.Equal(t, types.LanguagePT, extracted.Language)
	assert.True(t, extracted.HasTerm("python"))
	assert.True(t, extracted.HasTerm("data engineering"), "engenharia de dados should canonicalize")
	assert.True(t, extracted.HasTerm("microservices"), "accented microsserviços should fold and canonicalize")
	assert.True(t, extracted.HasTerm("communication"), "comunicação should fold and canonicalize")
}

func TestExtractWithRulesWordBoundaries(t *testing.T) {
	extracted := ExtractWithRules("We use Django and Golang, not djangonaut prose.", types.LanguageEN)

	assert.True(t, extracted.HasTerm("django"))
	assert.True(t, extracted.HasTerm("go"))
	assert.False(t, extracted.HasTerm("rest"), "no substring matches inside other words")
}

func TestExtractWithRulesDeterministicOrder(t *testing.T) {
	text := "python docker kubernetes sql aws terraform"
	first := ExtractWithRules(text, types.LanguageEN)
	second := ExtractWithRules(text, types.LanguageEN)

	require.Equal(t, first.Terms(), second.Terms())
}

func TestExtractWithRulesNeverFails(t *testing.T) {
	extracted := ExtractWithRules("", types.LanguageEN)

	require.NotNil(t, extracted)
	assert.Empty(t, extracted.Keywords)
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "kubernetes", Canonicalize("K8s"))
	assert.Equal(t, "postgresql", Canonicalize(" Postgres "))
	assert.Equal(t, "go", Canonicalize("golang"))
	assert.Equal(t, "unknown term", Canonicalize("Unknown Term"))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, types.CategoryTool, CategoryOf("docker", types.CategoryDomainTerm))
	assert.Equal(t, types.CategoryDomainTerm, CategoryOf("quantum weaving", types.CategoryDomainTerm))
}
