package types

import "strings"

// KeywordCategory classifies an extracted job keyword.
type KeywordCategory string

// Recognized keyword categories.
const (
	CategoryHardSkill  KeywordCategory = "hard_skill"
	CategoryTool       KeywordCategory = "tool"
	CategorySoftSkill  KeywordCategory = "soft_skill"
	CategoryDomainTerm KeywordCategory = "domain_term"
)

// ValidCategory reports whether c is one of the four recognized categories.
func ValidCategory(c KeywordCategory) bool {
	switch c {
	case CategoryHardSkill, CategoryTool, CategorySoftSkill, CategoryDomainTerm:
		return true
	}
	return false
}

// ExtractionSource tags which path produced a keyword set.
type ExtractionSource string

// Extraction provenance values. Downstream consumers may apply a confidence
// discount to rule-extracted terms.
const (
	SourceModel ExtractionSource = "model"
	SourceRules ExtractionSource = "rules"
)

// Keyword is a single normalized job requirement term.
type Keyword struct {
	Term     string          `json:"term"`
	Category KeywordCategory `json:"category"`
}

// ExtractedKeywords is the normalized, deduplicated keyword set for one
// posting. Immutable once produced for a given posting and extractor version.
type ExtractedKeywords struct {
	Keywords []Keyword        `json:"keywords"`
	Source   ExtractionSource `json:"source"`
	Language Language         `json:"language"`
}

// Terms returns the bare term list in extraction order.
func (e *ExtractedKeywords) Terms() []string {
	terms := make([]string, 0, len(e.Keywords))
	for _, kw := range e.Keywords {
		terms = append(terms, kw.Term)
	}
	return terms
}

// HasTerm reports whether the set contains term (case-insensitive).
func (e *ExtractedKeywords) HasTerm(term string) bool {
	lower := strings.ToLower(term)
	for _, kw := range e.Keywords {
		if kw.Term == lower {
			return true
		}
	}
	return false
}

// ByCategory returns the terms carrying the given category.
func (e *ExtractedKeywords) ByCategory(category KeywordCategory) []string {
	var terms []string
	for _, kw := range e.Keywords {
		if kw.Category == category {
			terms = append(terms, kw.Term)
		}
	}
	return terms
}
