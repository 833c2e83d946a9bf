package healing

import (
	"sort"
	"strings"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Coverage returns the fraction of keyword terms present case-insensitively
// in the document text. Literal substring containment: that is what ATS
// filters do, so it is what the loop optimizes.
func Coverage(doc *types.GeneratedDocument, terms []string) float64 {
	if len(terms) == 0 {
		return 1.0
	}
	return float64(len(coveredTerms(doc, terms))) / float64(len(terms))
}

// coveredTerms returns the subset of terms the document contains.
func coveredTerms(doc *types.GeneratedDocument, terms []string) []string {
	text := strings.ToLower(doc.Text())
	var covered []string
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			covered = append(covered, term)
		}
	}
	return covered
}

// categoryPriority orders missing terms for healing: hard skills first, soft
// skills last.
var categoryPriority = map[types.KeywordCategory]int{
	types.CategoryHardSkill:  0,
	types.CategoryTool:       1,
	types.CategoryDomainTerm: 2,
	types.CategorySoftSkill:  3,
}

// missingByPriority returns the keywords absent from the document, ordered by
// category priority then by original extraction order.
func missingByPriority(doc *types.GeneratedDocument, jobKeywords *types.ExtractedKeywords) []types.Keyword {
	text := strings.ToLower(doc.Text())
	var missing []types.Keyword
	for _, kw := range jobKeywords.Keywords {
		if !strings.Contains(text, strings.ToLower(kw.Term)) {
			missing = append(missing, kw)
		}
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return categoryPriority[missing[i].Category] < categoryPriority[missing[j].Category]
	})
	return missing
}
