// Package pipeline provides the high-level orchestration for one posting:
// extract keywords, score the match, derive the strategy, and once the plan
// is approved, synthesize and heal the tailored document. Stages run strictly
// in order; only independent postings run concurrently.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/config"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/healing"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/keywords"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/matching"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/profile"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/store"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/strategy"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/synthesis"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/workflow"
)

// StageError reports which stage aborted a run.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Pipeline wires the stages together for repeated runs.
type Pipeline struct {
	cfg       *config.Config
	extractor *keywords.Extractor
	engine    *matching.Engine
	synth     *synthesis.Synthesizer
	store     *store.Store // optional
	log       *zap.Logger
}

// New creates a Pipeline. The store is optional; without it results stay in
// memory.
func New(cfg *config.Config, extractor *keywords.Extractor, engine *matching.Engine, synth *synthesis.Synthesizer, st *store.Store, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		engine:    engine,
		synth:     synth,
		store:     st,
		log:       log.Named("pipeline"),
	}
}

// Options tunes one run.
type Options struct {
	Mode synthesis.Mode
	// AutoApprove approves the strategic plan without a review pause. When
	// false the run stops after the strategy stage.
	AutoApprove bool
	// Force routes matching through the explicit force-match rewrite.
	Force bool
}

// Result is everything one run produced.
type Result struct {
	Posting  *types.JobPosting
	Keywords *types.ExtractedKeywords
	Match    *types.MatchResult
	Plan     *types.StrategicPlan
	Document *types.GeneratedDocument
	Status   workflow.Status
}

// Run processes one posting end to end. It stops after the strategy stage
// unless the plan is approved, honoring the approval gate.
func (p *Pipeline) Run(ctx context.Context, posting *types.JobPosting, masterProfile *types.MasterProfile, opts Options) (*Result, error) {
	tracker, err := trackerFor(posting)
	if err != nil {
		return nil, &StageError{Stage: "workflow", Cause: err}
	}
	log := p.log.With(zap.String("posting_id", posting.ID), zap.String("company", posting.Company))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	extracted, err := p.extractor.Extract(ctx, posting.Description, posting.Language)
	if err != nil {
		return nil, &StageError{Stage: "keyword_extraction", Cause: err}
	}
	log.Info("keywords extracted",
		zap.Int("terms", len(extracted.Keywords)),
		zap.String("source", string(extracted.Source)))

	index := profile.NewSkillIndex(masterProfile)
	var match *types.MatchResult
	if opts.Force {
		match, err = p.engine.ForceMatch(ctx, extracted, masterProfile, p.synth)
	} else {
		match, err = p.engine.Score(extracted, index, masterProfile.Experiences)
	}
	if err != nil {
		return nil, &StageError{Stage: "matching", Cause: err}
	}
	log.Info("match scored",
		zap.Int("percentage", match.Percentage()),
		zap.String("tier", string(match.Tier)),
		zap.Int("missing", len(match.KeywordsMissing)))

	plan := strategy.Analyze(posting, extracted)
	posting.StrategicPlan = plan
	score := match.Score
	posting.MatchScore = &score
	posting.MatchedKeywords = match.KeywordsCovered

	if tracker.Status() == workflow.StatusTodo {
		if err := tracker.Advance(workflow.StatusStrategy); err != nil {
			return nil, &StageError{Stage: "workflow", Cause: err}
		}
	}

	result := &Result{
		Posting:  posting,
		Keywords: extracted,
		Match:    match,
		Plan:     plan,
		Status:   tracker.Status(),
	}

	if err := p.persist(ctx, posting, match, plan, tracker.Status()); err != nil {
		return nil, &StageError{Stage: "store", Cause: err}
	}

	if tracker.Status() == workflow.StatusStrategy {
		if !opts.AutoApprove {
			log.Info("strategic plan awaiting approval")
			return result, nil
		}
		plan.Approved = true
		if err := tracker.Approve(); err != nil {
			return nil, &StageError{Stage: "workflow", Cause: err}
		}
		result.Status = tracker.Status()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := p.synth.Synthesize(ctx, posting, extracted, match, masterProfile, opts.Mode)
	if err != nil {
		return nil, &StageError{Stage: "synthesis", Cause: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	healed, err := healing.Heal(ctx, doc, extracted, p.synth, healing.Options{
		MinCoverage:   p.cfg.Healing.MinCoverage,
		MaxIterations: p.cfg.Healing.MaxIterations,
		Experiences:   masterProfile.Experiences,
		Scores:        match.Experiences,
		Log:           p.log,
	})
	if err != nil {
		return nil, &StageError{Stage: "healing", Cause: err}
	}
	log.Info("document generated",
		zap.Float64("ats_coverage", healed.ATSCoverage),
		zap.Int("healing_iterations", healed.HealingIterations),
		zap.Strings("flags", healed.Flags))

	result.Document = healed
	result.Status = tracker.Status()
	posting.Status = string(tracker.Status())

	if err := p.persist(ctx, posting, match, plan, tracker.Status()); err != nil {
		return nil, &StageError{Stage: "store", Cause: err}
	}
	return result, nil
}

// trackerFor resumes the workflow from the posting's stored status, treating
// a blank status as a fresh ingest.
func trackerFor(posting *types.JobPosting) (*workflow.Tracker, error) {
	if posting.Status == "" {
		posting.Status = string(workflow.StatusTodo)
	}
	return workflow.ResumeTracker(workflow.Status(posting.Status))
}

// persist writes the posting's current outcome to the store, when configured.
func (p *Pipeline) persist(ctx context.Context, posting *types.JobPosting, match *types.MatchResult, plan *types.StrategicPlan, status workflow.Status) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.SaveMatch(ctx, posting.ID, match.Score, match.KeywordsCovered, plan); err != nil {
		return err
	}
	return p.store.UpdateStatus(ctx, posting.ID, string(status))
}
