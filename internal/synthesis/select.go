package synthesis

import (
	"sort"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// selectTopExperiences picks the K highest-scoring experiences. Ties break by
// tier (core outranks contextual), then by recency (an ongoing period wins,
// then the later end date, then the later start date).
func selectTopExperiences(scores []types.ExperienceScore, bank []types.Experience, k int) []types.Experience {
	byID := make(map[string]types.Experience, len(bank))
	for _, exp := range bank {
		byID[exp.ID] = exp
	}

	ranked := make([]types.ExperienceScore, 0, len(scores))
	for _, es := range scores {
		if _, ok := byID[es.ExperienceID]; ok {
			ranked = append(ranked, es)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		ea, eb := byID[a.ExperienceID], byID[b.ExperienceID]
		if ea.Tier != eb.Tier {
			return ea.Tier == types.ExperienceCore
		}
		return moreRecent(ea.Period, eb.Period)
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	selected := make([]types.Experience, 0, k)
	for _, es := range ranked[:k] {
		selected = append(selected, byID[es.ExperienceID])
	}
	return selected
}

// moreRecent reports whether period a is more recent than b. YYYY-MM strings
// compare correctly as text.
func moreRecent(a, b types.Period) bool {
	if a.Current() != b.Current() {
		return a.Current()
	}
	if a.End != b.End {
		return a.End > b.End
	}
	return a.Start > b.Start
}
