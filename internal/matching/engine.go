// Package matching scores a posting's keyword set against the candidate
// profile. Scores are weighted Jaccard over canonical terms; tiers and
// warning floors come from configuration.
package matching

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/keywords"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/profile"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// Weight assigned to a job term the profile does not carry. It still counts
// in the union, so missing requirements pull the score down at full weight.
const unmatchedTermWeight = 1.0

// Engine computes match results.
type Engine struct {
	thresholds config.Thresholds
	mustHave   []types.KeywordCategory
	log        *zap.Logger
}

// NewEngine creates a matching engine from configuration.
func NewEngine(cfg *config.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	mustHave := make([]types.KeywordCategory, 0, len(cfg.MustHaveCategories))
	for _, c := range cfg.MustHaveCategories {
		mustHave = append(mustHave, types.KeywordCategory(c))
	}
	return &Engine{
		thresholds: cfg.Thresholds,
		mustHave:   mustHave,
		log:        log.Named("matching"),
	}
}

// Score computes the aggregate and per-experience match for the job keyword
// set. The result is built fresh; callers replace, never mutate.
func (e *Engine) Score(jobKeywords *types.ExtractedKeywords, index *profile.SkillIndex, experiences []types.Experience) (*types.MatchResult, error) {
	if index == nil || index.Len() == 0 {
		return nil, &InvalidProfileError{Reason: "skill index is empty"}
	}
	if jobKeywords == nil || len(jobKeywords.Keywords) == 0 {
		return nil, fmt.Errorf("job keyword set is empty")
	}

	jobTerms := dedupeTerms(jobKeywords.Terms())

	var covered, missing []string
	var intersection, union float64
	for _, term := range jobTerms {
		if w, ok := index.Weight(term); ok {
			intersection += w
			union += w
			covered = append(covered, term)
		} else {
			union += unmatchedTermWeight
			missing = append(missing, term)
		}
	}
	// Profile terms the job never asks for still widen the union.
	jobSet := termSet(jobTerms)
	for _, term := range index.Terms() {
		if !jobSet[term] {
			if w, ok := index.Weight(term); ok {
				union += w
			}
		}
	}

	score := clamp01(safeRatio(intersection, union))

	result := &types.MatchResult{
		Score:           score,
		Tier:            e.tierFor(score),
		Experiences:     e.scoreExperiences(jobTerms, index, experiences),
		KeywordsCovered: covered,
		KeywordsMissing: missing,
	}
	result.Warnings = e.buildWarnings(result, jobKeywords)
	return result, nil
}

// scoreExperiences runs the same weighted Jaccard restricted to each
// experience's skill tags, normalized per experience.
func (e *Engine) scoreExperiences(jobTerms []string, index *profile.SkillIndex, experiences []types.Experience) []types.ExperienceScore {
	scores := make([]types.ExperienceScore, 0, len(experiences))
	jobSet := termSet(jobTerms)

	for _, exp := range experiences {
		expTerms := dedupeTerms(exp.Skills)
		expSet := termSet(expTerms)

		var intersection, union float64
		var matched []string
		for _, term := range jobTerms {
			if expSet[term] {
				w := termWeight(index, exp, term)
				intersection += w
				union += w
				matched = append(matched, term)
			} else {
				union += unmatchedTermWeight
			}
		}
		for _, term := range expTerms {
			if !jobSet[term] {
				union += termWeight(index, exp, term)
			}
		}

		score := clamp01(safeRatio(intersection, union))
		scores = append(scores, types.ExperienceScore{
			ExperienceID:    exp.ID,
			Score:           score,
			Tier:            e.tierFor(score),
			MatchedKeywords: matched,
		})
	}
	return scores
}

// buildWarnings collects the non-fatal signals riding on a result.
func (e *Engine) buildWarnings(result *types.MatchResult, jobKeywords *types.ExtractedKeywords) []string {
	var warnings []string

	if result.Score < e.thresholds.Minimum {
		warnings = append(warnings, fmt.Sprintf("aggregate score %.2f below minimum %.2f", result.Score, e.thresholds.Minimum))
	}

	anyAboveLow := false
	for _, es := range result.Experiences {
		if es.Tier != types.TierLow {
			anyAboveLow = true
			break
		}
	}
	if !anyAboveLow {
		warnings = append(warnings, "no experience scores above low")
	}

	coveredSet := termSet(result.KeywordsCovered)
	for _, category := range e.mustHave {
		terms := jobKeywords.ByCategory(category)
		if len(terms) == 0 {
			continue
		}
		anyCovered := false
		for _, term := range terms {
			if coveredSet[keywords.Canonicalize(term)] {
				anyCovered = true
				break
			}
		}
		if !anyCovered {
			warnings = append(warnings, fmt.Sprintf("must-have category %s entirely missing", category))
		}
	}

	if hasAITerms(jobKeywords) && !anyAICovered(result.KeywordsCovered) {
		warnings = append(warnings, "no AI/LLM keyword overlap")
	}

	return warnings
}

func (e *Engine) tierFor(score float64) types.MatchTier {
	switch {
	case score >= e.thresholds.High:
		return types.TierHigh
	case score >= e.thresholds.Medium:
		return types.TierMedium
	default:
		return types.TierLow
	}
}

// aiMarkers flags the terms that make a posting an AI/LLM role.
var aiMarkers = map[string]bool{
	"llm": true, "llms": true, "llm orchestration": true, "machine learning": true,
	"deep learning": true, "nlp": true, "rag": true, "prompt engineering": true,
	"generative ai": true, "ai": true, "langchain": true, "pytorch": true, "tensorflow": true,
}

func hasAITerms(jobKeywords *types.ExtractedKeywords) bool {
	for _, kw := range jobKeywords.Keywords {
		if isAITerm(kw.Term) {
			return true
		}
	}
	return false
}

func anyAICovered(covered []string) bool {
	for _, term := range covered {
		if isAITerm(term) {
			return true
		}
	}
	return false
}

func isAITerm(term string) bool {
	if aiMarkers[term] {
		return true
	}
	return strings.Contains(term, "llm") || strings.Contains(term, "machine learning")
}

// termWeight resolves a term's weight from the index, falling back to the
// experience's tier weight for tags outside the index.
func termWeight(index *profile.SkillIndex, exp types.Experience, term string) float64 {
	if w, ok := index.Weight(term); ok {
		return w
	}
	if exp.Tier == types.ExperienceCore {
		return 1.0
	}
	return 0.4
}

func dedupeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		canonical := keywords.Canonicalize(t)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

func termSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[t] = true
	}
	return set
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
