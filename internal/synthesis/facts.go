package synthesis

import (
	"regexp"
	"strings"
)

// numericToken matches the quantitative facts that must survive synthesis
// verbatim: percentages, currency amounts (R$ and $), and bare counts with
// optional thousand or decimal separators.
var numericToken = regexp.MustCompile(`(?:R\$\s?|\$\s?)?\d+(?:[.,]\d+)*(?:%|k|K|M|mi)?`)

// NumericTokens extracts the numeric facts from text, deduplicated in order
// of first appearance.
func NumericTokens(text string) []string {
	matches := numericToken.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if !seen[m] {
			seen[m] = true
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// missingFacts returns the source numeric tokens that do not appear unchanged
// in the generated text.
func missingFacts(sourceText, generatedText string) []string {
	var missing []string
	for _, token := range NumericTokens(sourceText) {
		if !strings.Contains(generatedText, token) {
			missing = append(missing, token)
		}
	}
	return missing
}
