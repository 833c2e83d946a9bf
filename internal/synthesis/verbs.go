package synthesis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
)

// substituteVerbs replaces forbidden authority verbs with execution-tier
// substitutes, pairing them by position and cycling when the substitute list
// is shorter. Whole words only; the replacement keeps the original's leading
// capitalization. Deterministic post-pass behind the prompt constraint, so a
// model that ignores the instruction still cannot leak an authority verb.
func substituteVerbs(text string, rules config.VocabularyRules) string {
	if len(rules.ForbiddenVerbs) == 0 || len(rules.SubstituteVerbs) == 0 {
		return text
	}
	for i, verb := range rules.ForbiddenVerbs {
		substitute := rules.SubstituteVerbs[i%len(rules.SubstituteVerbs)]
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(verb) + `\b`)
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			if isCapitalized(match) {
				return capitalize(substitute)
			}
			return substitute
		})
	}
	return text
}

func isCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
