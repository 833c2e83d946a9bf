// Package profile loads the candidate's master profile and maintains the
// skill index the matching engine scores against.
package profile

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/keywords"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// categoryWeights maps a profile skill category onto its match weight.
// Unlisted categories score as technical.
var categoryWeights = map[string]float64{
	"core":       1.0,
	"ai_llm":     1.0,
	"technical":  0.7,
	"contextual": 0.4,
}

const defaultCategoryWeight = 0.7

// SkillIndex maps canonical skill terms to weights. Rebuilds publish a fresh
// snapshot through an atomic pointer swap, so concurrent readers either see
// the index entirely before or entirely after an edit, never a mix.
type SkillIndex struct {
	snapshot atomic.Pointer[indexSnapshot]
}

type indexSnapshot struct {
	weights map[string]float64
}

// NewSkillIndex builds an index from the profile's skill bank.
func NewSkillIndex(p *types.MasterProfile) *SkillIndex {
	idx := &SkillIndex{}
	idx.Rebuild(p)
	return idx
}

// Rebuild recomputes every term weight off to the side and swaps the result
// in as one unit. Call after any profile edit.
func (idx *SkillIndex) Rebuild(p *types.MasterProfile) {
	weights := make(map[string]float64)

	for category, terms := range p.Skills {
		weight, ok := categoryWeights[strings.ToLower(category)]
		if !ok {
			weight = defaultCategoryWeight
		}
		for _, term := range terms {
			setMax(weights, keywords.Canonicalize(term), weight)
		}
	}

	// Experience skill tags join the index at their experience's tier weight,
	// so tags outside the skill bank still count toward coverage.
	for _, exp := range p.Experiences {
		weight := categoryWeights["contextual"]
		if exp.Tier == types.ExperienceCore {
			weight = categoryWeights["core"]
		}
		for _, term := range exp.Skills {
			setMax(weights, keywords.Canonicalize(term), weight)
		}
	}

	idx.snapshot.Store(&indexSnapshot{weights: weights})
}

// setMax keeps the highest weight when a term appears under several categories.
func setMax(weights map[string]float64, term string, weight float64) {
	if term == "" {
		return
	}
	if existing, ok := weights[term]; !ok || weight > existing {
		weights[term] = weight
	}
}

// Weight returns the term's weight and whether the profile carries it.
func (idx *SkillIndex) Weight(term string) (float64, bool) {
	snap := idx.snapshot.Load()
	if snap == nil {
		return 0, false
	}
	w, ok := snap.weights[keywords.Canonicalize(term)]
	return w, ok
}

// Len reports the number of indexed terms.
func (idx *SkillIndex) Len() int {
	snap := idx.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.weights)
}

// Terms returns the indexed terms sorted for stable iteration.
func (idx *SkillIndex) Terms() []string {
	snap := idx.snapshot.Load()
	if snap == nil {
		return nil
	}
	terms := make([]string, 0, len(snap.weights))
	for term := range snap.weights {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
