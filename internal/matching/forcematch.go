package matching

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/profile"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// SkillTransposer rewrites an experience's skill framing so missing job
// keywords that the experience truthfully demonstrates under another name
// become visible. The synthesizer implements this.
type SkillTransposer interface {
	TransposeSkills(ctx context.Context, exp types.Experience, missing []string) ([]string, error)
}

// ForceMatch is the explicit, user-triggered rewrite-and-rescore operation.
// It works on an in-memory copy of the experience bank; the master profile is
// never mutated. Every invocation is logged as a forced rewrite, and the
// result carries the Forced marker so downstream consumers can tell it from
// an organic score.
func (e *Engine) ForceMatch(ctx context.Context, jobKeywords *types.ExtractedKeywords, p *types.MasterProfile, transposer SkillTransposer) (*types.MatchResult, error) {
	baseIndex := profile.NewSkillIndex(p)
	before, err := e.Score(jobKeywords, baseIndex, p.Experiences)
	if err != nil {
		return nil, err
	}
	e.log.Info("force match requested: rewriting skill framing on profile copy",
		zap.Float64("score_before", before.Score),
		zap.Int("missing_terms", len(before.KeywordsMissing)))

	if len(before.KeywordsMissing) == 0 {
		before.Forced = true
		return before, nil
	}

	rewritten := p.CloneExperiences()
	for i := range rewritten {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		transposed, err := transposer.TransposeSkills(ctx, rewritten[i], before.KeywordsMissing)
		if err != nil {
			return nil, fmt.Errorf("skill transposition failed for experience %s: %w", rewritten[i].ID, err)
		}
		rewritten[i].Skills = append(rewritten[i].Skills, transposed...)
	}

	forcedProfile := *p
	forcedProfile.Experiences = rewritten
	after, err := e.Score(jobKeywords, profile.NewSkillIndex(&forcedProfile), rewritten)
	if err != nil {
		return nil, err
	}
	after.Forced = true

	e.log.Info("force match rescored",
		zap.Float64("score_before", before.Score),
		zap.Float64("score_after", after.Score),
		zap.Int("still_missing", len(after.KeywordsMissing)))
	return after, nil
}
