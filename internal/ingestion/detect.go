package ingestion

import (
	"strings"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Marker words for language detection. Counting beats n-gram models here:
// postings are long enough that a handful of function words decides it.
var ptMarkers = []string{
	" de ", " da ", " do ", " para ", " com ", " você ", " vaga ",
	" experiência ", " conhecimento ", " empresa ", " nós ", " não ",
}

var enMarkers = []string{
	" the ", " and ", " with ", " for ", " you ", " our ", " we ",
	" experience ", " knowledge ", " team ", " will ", " role ",
}

// DetectLanguage picks en or pt by marker-word frequency. English wins ties,
// matching the dominant posting language upstream.
func DetectLanguage(text string) types.Language {
	lower := " " + strings.ToLower(text) + " "
	ptCount, enCount := 0, 0
	for _, marker := range ptMarkers {
		ptCount += strings.Count(lower, marker)
	}
	for _, marker := range enMarkers {
		enCount += strings.Count(lower, marker)
	}
	if ptCount > enCount {
		return types.LanguagePT
	}
	return types.LanguageEN
}

// DetectSeniority infers the posting's level from its title.
func DetectSeniority(title string) types.Seniority {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, "estágio", "estagiário", "intern", "júnior", "junior", "jr"):
		return types.SeniorityJunior
	case containsAny(lower, "head", "lead", "principal", "staff"):
		return types.SeniorityLead
	case containsAny(lower, "gerente", "manager", "coordenador", "coordinator"):
		return types.SeniorityManager
	case containsAny(lower, "sênior", "senior", "sr"):
		return types.SenioritySenior
	default:
		return types.SeniorityMid
	}
}

// DetectJobType buckets a posting for the strategy heuristics.
func DetectJobType(title, description string) string {
	lower := strings.ToLower(title + " " + description)
	switch {
	case containsAny(lower, "machine learning", "llm", " ai ", "inteligência artificial", "artificial intelligence", "genai"):
		return "ai"
	case containsAny(lower, "growth", "aquisição", "acquisition", "cac", "ltv"):
		return "growth"
	case containsAny(lower, "marketing", "brand", "demand gen"):
		return "marketing"
	case containsAny(lower, "data", "dados", "analytics"):
		return "data"
	default:
		return "engineering"
	}
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
