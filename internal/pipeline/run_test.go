package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/gateway"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/keywords"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/matching"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/synthesis"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/workflow"
)

// scriptedProvider answers extraction and synthesis prompts with canned
// schema-valid payloads and records every prompt. Safe for concurrent runs.
type scriptedProvider struct {
	mu      sync.Mutex
	prompts []string
}

const keywordPayload = `[{"term": "python", "category": "hard_skill"}]`

const documentPayload = `{
  "headline": "Backend Engineer",
  "summary": "Ships backend systems in python.",
  "bullets": [{"experience_id": "e1", "text": "Built python services, cut costs by 40%."}]
}`

func (s *scriptedProvider) Name() string                   { return "scripted" }
func (s *scriptedProvider) Supports(gateway.TaskKind) bool { return true }
func (s *scriptedProvider) Timeout() time.Duration         { return 0 }

func (s *scriptedProvider) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if strings.Contains(prompt, "resume writer") {
		return documentPayload, nil
	}
	return keywordPayload, nil
}

func (s *scriptedProvider) synthesisCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, prompt := range s.prompts {
		if strings.Contains(prompt, "resume writer") {
			n++
		}
	}
	return n
}

func newTestPipeline(p gateway.Provider) *Pipeline {
	cfg := config.Default()
	gw := gateway.New([]gateway.Provider{p}, gateway.Options{})
	return New(cfg,
		keywords.NewExtractor(gw, nil),
		matching.NewEngine(cfg, nil),
		synthesis.New(gw, cfg, nil),
		nil, nil)
}

func pipelineProfile() *types.MasterProfile {
	return &types.MasterProfile{
		Candidate: types.Candidate{Name: "Ana Silva"},
		Headlines: map[string]string{"backend": "Backend Engineer"},
		Skills:    map[string][]string{"core": {"python"}},
		Experiences: []types.Experience{
			{
				ID: "e1", Company: "Acme", Role: "Engineer", Tier: types.ExperienceCore,
				Period: types.Period{Start: "2021-02"},
				Skills: []string{"python"},
				Bullets: []types.STARBullet{
					{Action: "Built python services", Result: "cut costs by 40%"},
				},
			},
		},
	}
}

func pipelinePosting() *types.JobPosting {
	return &types.JobPosting{
		ID:          "job-1",
		Title:       "Backend Engineer",
		Company:     "Initech",
		Description: "We need an engineer with experience in python for the backend team.",
		Language:    types.LanguageEN,
	}
}

func TestRunStopsAtApprovalGate(t *testing.T) {
	provider := &scriptedProvider{}
	p := newTestPipeline(provider)

	result, err := p.Run(context.Background(), pipelinePosting(), pipelineProfile(), Options{Mode: synthesis.ModeSenior})

	require.NoError(t, err)
	assert.Equal(t, workflow.StatusStrategy, result.Status)
	assert.Nil(t, result.Document, "tailoring must not start before approval")
	require.NotNil(t, result.Plan)
	assert.False(t, result.Plan.Approved)
	assert.Equal(t, 0, provider.synthesisCalls())
}

func TestRunAutoApproveProducesDocument(t *testing.T) {
	provider := &scriptedProvider{}
	p := newTestPipeline(provider)
	posting := pipelinePosting()

	result, err := p.Run(context.Background(), posting, pipelineProfile(), Options{
		Mode:        synthesis.ModeSenior,
		AutoApprove: true,
	})

	require.NoError(t, err)
	assert.Equal(t, workflow.StatusTailoring, result.Status)
	require.NotNil(t, result.Document)
	assert.True(t, result.Plan.Approved)
	assert.InDelta(t, 1.0, result.Match.Score, 1e-9)
	assert.InDelta(t, 1.0, result.Document.ATSCoverage, 1e-9)
	assert.Empty(t, result.Document.Flags)
	require.NotNil(t, posting.MatchScore)
	assert.Equal(t, string(workflow.StatusTailoring), posting.Status)
}

func TestRunResumesFromTailoring(t *testing.T) {
	provider := &scriptedProvider{}
	p := newTestPipeline(provider)
	posting := pipelinePosting()
	posting.Status = string(workflow.StatusTailoring)

	result, err := p.Run(context.Background(), posting, pipelineProfile(), Options{Mode: synthesis.ModeSenior})

	require.NoError(t, err)
	assert.NotNil(t, result.Document, "an approved posting re-runs tailoring without a new gate")
	assert.Equal(t, workflow.StatusTailoring, result.Status)
}

func TestRunRejectsUnknownStoredStatus(t *testing.T) {
	p := newTestPipeline(&scriptedProvider{})
	posting := pipelinePosting()
	posting.Status = "archived"

	_, err := p.Run(context.Background(), posting, pipelineProfile(), Options{})

	var stage *StageError
	require.ErrorAs(t, err, &stage)
	assert.Equal(t, "workflow", stage.Stage)
}

func TestRunWrapsMatchingFailure(t *testing.T) {
	p := newTestPipeline(&scriptedProvider{})

	_, err := p.Run(context.Background(), pipelinePosting(), &types.MasterProfile{}, Options{})

	var stage *StageError
	require.ErrorAs(t, err, &stage)
	assert.Equal(t, "matching", stage.Stage)

	var invalid *matching.InvalidProfileError
	assert.ErrorAs(t, err, &invalid, "the cause stays reachable through the stage wrapper")
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(&scriptedProvider{}).Run(ctx, pipelinePosting(), pipelineProfile(), Options{})

	require.ErrorIs(t, err, context.Canceled)
}

func TestRunAllKeepsInputOrder(t *testing.T) {
	p := newTestPipeline(&scriptedProvider{})
	postings := []*types.JobPosting{pipelinePosting(), pipelinePosting(), pipelinePosting()}
	for i, posting := range postings {
		posting.ID = "job-" + string(rune('a'+i))
	}

	results, err := p.RunAll(context.Background(), postings, pipelineProfile(), Options{AutoApprove: true}, 2)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, postings[i].ID, result.Posting.ID)
		assert.NotNil(t, result.Document)
	}
}

func TestRunAllPropagatesFailure(t *testing.T) {
	p := newTestPipeline(&scriptedProvider{})
	postings := []*types.JobPosting{pipelinePosting()}

	_, err := p.RunAll(context.Background(), postings, &types.MasterProfile{}, Options{}, 4)

	require.Error(t, err)
}
