package synthesis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// queueProvider replays canned responses in order and records the prompts it
// was given.
type queueProvider struct {
	responses []string
	prompts   []string
}

func (q *queueProvider) Name() string                   { return "queue" }
func (q *queueProvider) Supports(gateway.TaskKind) bool { return true }
func (q *queueProvider) Timeout() time.Duration         { return 0 }

func (q *queueProvider) Generate(_ context.Context, prompt string) (string, error) {
	q.prompts = append(q.prompts, prompt)
	response := q.responses[0]
	if len(q.responses) > 1 {
		q.responses = q.responses[1:]
	}
	return response, nil
}

func docJSON(t *testing.T, headline, summary string, bullets ...types.DocumentBullet) string {
	t.Helper()
	payload := map[string]any{"headline": headline, "summary": summary, "bullets": bullets}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(data)
}

func testProfile() *types.MasterProfile {
	return &types.MasterProfile{
		Candidate: types.Candidate{Name: "Ana Silva"},
		Headlines: map[string]string{
			"backend": "Backend Engineer focused on distributed systems",
			"data":    "Data Platform Engineer",
		},
		Experiences: []types.Experience{
			{
				ID: "e1", Company: "Acme", Role: "Engineer", Tier: types.ExperienceCore,
				Period: types.Period{Start: "2021-02"},
				Skills: []string{"python"},
				Bullets: []types.STARBullet{
					{Action: "Rebuilt the billing pipeline", Result: "cut costs by 40%"},
				},
			},
			{
				ID: "e2", Company: "Beta", Role: "Analyst", Tier: types.ExperienceContextual,
				Period: types.Period{Start: "2018-01", End: "2021-01"},
				Skills: []string{"sql"},
				Bullets: []types.STARBullet{
					{Action: "Automated reports", Result: "saved 12 hours weekly"},
				},
			},
		},
	}
}

func testMatch() *types.MatchResult {
	return &types.MatchResult{
		Score: 0.8,
		Tier:  types.TierHigh,
		Experiences: []types.ExperienceScore{
			{ExperienceID: "e1", Score: 0.9, Tier: types.TierHigh},
			{ExperienceID: "e2", Score: 0.4, Tier: types.TierMedium},
		},
	}
}

func testPosting() *types.JobPosting {
	return &types.JobPosting{Title: "Backend Engineer", Company: "Initech", Language: types.LanguageEN}
}

func jobKeywords() *types.ExtractedKeywords {
	return &types.ExtractedKeywords{Keywords: []types.Keyword{
		{Term: "python", Category: types.CategoryHardSkill},
	}}
}

func newSynthesizer(p gateway.Provider) *Synthesizer {
	return New(gateway.New([]gateway.Provider{p}, gateway.Options{}), config.Default(), nil)
}

func TestSynthesizePreservesVerifiedFacts(t *testing.T) {
	provider := &queueProvider{responses: []string{
		docJSON(t, "Backend Engineer focused on distributed systems", "Builds billing systems in python.",
			types.DocumentBullet{ExperienceID: "e1", Text: "Rebuilt the billing pipeline, cutting costs by 40%."},
			types.DocumentBullet{ExperienceID: "e2", Text: "Automated reports, saving 12 hours weekly."},
		),
	}}
	synth := newSynthesizer(provider)

	doc, err := synth.Synthesize(context.Background(), testPosting(), jobKeywords(), testMatch(), testProfile(), ModeSenior)

	require.NoError(t, err)
	assert.Len(t, provider.prompts, 1, "verified facts need no retry")
	assert.Empty(t, doc.Flags)
	assert.Equal(t, "backend", doc.HeadlineID)
	require.Len(t, doc.Bullets, 2)
	assert.Equal(t, "e1", doc.Bullets[0].ExperienceID)
}

func TestSynthesizeRetriesOnFactDriftThenFlags(t *testing.T) {
	// Both drafts round 40% away; the second failure flags instead of erroring.
	drifted := docJSON(t, "Engineer", "Builds things.",
		types.DocumentBullet{ExperienceID: "e1", Text: "Cut costs significantly, saving 12 hours weekly."},
	)
	provider := &queueProvider{responses: []string{drifted, drifted}}
	synth := newSynthesizer(provider)

	doc, err := synth.Synthesize(context.Background(), testPosting(), jobKeywords(), testMatch(), testProfile(), ModeSenior)

	require.NoError(t, err, "fact drift after retry is a flag, not a failure")
	assert.Len(t, provider.prompts, 2)
	assert.Contains(t, provider.prompts[1], "zero tolerance")
	assert.True(t, doc.HasFlag(types.FlagFactsUnverified))
}

func TestSynthesizeRetrySucceeds(t *testing.T) {
	drifted := docJSON(t, "Engineer", "Builds things.",
		types.DocumentBullet{ExperienceID: "e1", Text: "Cut costs, saving 12 hours weekly."},
	)
	fixed := docJSON(t, "Engineer", "Builds things.",
		types.DocumentBullet{ExperienceID: "e1", Text: "Cut costs by 40%, saving 12 hours weekly."},
	)
	provider := &queueProvider{responses: []string{drifted, fixed}}
	synth := newSynthesizer(provider)

	doc, err := synth.Synthesize(context.Background(), testPosting(), jobKeywords(), testMatch(), testProfile(), ModeSenior)

	require.NoError(t, err)
	assert.False(t, doc.HasFlag(types.FlagFactsUnverified))
}

func TestSynthesizeJuniorModeSubstitutesVerbs(t *testing.T) {
	provider := &queueProvider{responses: []string{
		docJSON(t, "Engineer", "Led delivery of billing systems with 40% savings and 12 hours weekly automation.",
			types.DocumentBullet{ExperienceID: "e1", Text: "Managed the pipeline rebuild, cut costs by 40%, saved 12 hours weekly."},
		),
	}}
	synth := newSynthesizer(provider)

	doc, err := synth.Synthesize(context.Background(), testPosting(), jobKeywords(), testMatch(), testProfile(), ModeJunior)

	require.NoError(t, err)
	assert.Contains(t, provider.prompts[0], "junior position")
	assert.NotContains(t, doc.Summary, "Led")
	assert.NotContains(t, doc.Bullets[0].Text, "Managed")
	assert.Contains(t, doc.Summary, "Built", "forbidden verbs substitute positionally")
}

func TestSelectTopExperiencesTieBreaks(t *testing.T) {
	bank := []types.Experience{
		{ID: "old-core", Tier: types.ExperienceCore, Period: types.Period{Start: "2015-01", End: "2018-01"}},
		{ID: "recent-contextual", Tier: types.ExperienceContextual, Period: types.Period{Start: "2022-01"}},
		{ID: "recent-core", Tier: types.ExperienceCore, Period: types.Period{Start: "2020-01"}},
	}
	scores := []types.ExperienceScore{
		{ExperienceID: "old-core", Score: 0.5},
		{ExperienceID: "recent-contextual", Score: 0.5},
		{ExperienceID: "recent-core", Score: 0.5},
	}

	selected := selectTopExperiences(scores, bank, 2)

	require.Len(t, selected, 2)
	assert.Equal(t, "recent-core", selected[0].ID, "core plus ongoing beats core ended")
	assert.Equal(t, "old-core", selected[1].ID, "core outranks contextual at equal score")
}

func TestSelectTopExperiencesByScore(t *testing.T) {
	bank := []types.Experience{
		{ID: "a", Tier: types.ExperienceContextual},
		{ID: "b", Tier: types.ExperienceCore},
	}
	scores := []types.ExperienceScore{
		{ExperienceID: "a", Score: 0.9},
		{ExperienceID: "b", Score: 0.2},
	}

	selected := selectTopExperiences(scores, bank, 5)

	require.Len(t, selected, 2)
	assert.Equal(t, "a", selected[0].ID, "score beats tier")
}
