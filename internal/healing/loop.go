// Package healing closes the gap between a synthesized document and the ATS
// keyword coverage floor. Bounded rewrites, never worse: an iteration that
// loses a previously covered term is reverted, and the loop always
// terminates within its budget.
package healing

import (
	"context"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// BulletRewriter rewrites one document bullet to incorporate a keyword. The
// synthesizer implements this.
type BulletRewriter interface {
	RewriteBullet(ctx context.Context, bullet types.DocumentBullet, exp *types.Experience, term string, covered []string) (string, error)
}

// Options bounds a healing run.
type Options struct {
	MinCoverage   float64
	MaxIterations int
	// Experiences supplies the fact sources bullet rewrites must stay
	// truthful to, keyed by bullet ExperienceID.
	Experiences []types.Experience
	// Scores ranks bullets for rewrite targeting. Optional.
	Scores []types.ExperienceScore
	Log    *zap.Logger
}

// Heal iterates the document toward the coverage floor. The input document is
// never mutated; the returned copy carries the final ATSCoverage, the number
// of iterations spent (accepted and reverted both count), and the
// coverage_unmet flag when the budget ran out short of the floor.
func Heal(ctx context.Context, doc *types.GeneratedDocument, jobKeywords *types.ExtractedKeywords, rewriter BulletRewriter, opts Options) (*types.GeneratedDocument, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("healing")

	terms := jobKeywords.Terms()
	byID := experienceMap(opts.Experiences)

	healed := doc.Clone()
	healed.ATSCoverage = Coverage(healed, terms)
	iterations := 0

	for healed.ATSCoverage < opts.MinCoverage && iterations < opts.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		missing := missingByPriority(healed, jobKeywords)
		if len(missing) == 0 {
			break
		}
		target := missing[0]
		bulletIdx := targetBullet(healed, opts.Scores)
		if bulletIdx < 0 {
			break
		}

		snapshot := healed.Clone()
		coveredBefore := coveredTerms(healed, terms)

		rewritten, err := rewriter.RewriteBullet(ctx, healed.Bullets[bulletIdx], byID[healed.Bullets[bulletIdx].ExperienceID], target.Term, coveredBefore)
		iterations++
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("bullet rewrite failed", zap.String("term", target.Term), zap.Error(err))
			continue
		}
		healed.Bullets[bulletIdx].Text = rewritten

		if regressed := lostTerms(coveredBefore, coveredTerms(healed, terms)); len(regressed) > 0 {
			log.Info("rewrite regressed covered terms, reverting",
				zap.String("term", target.Term),
				zap.Strings("lost", regressed))
			healed = snapshot
			continue
		}

		healed.ATSCoverage = Coverage(healed, terms)
		log.Debug("rewrite accepted",
			zap.String("term", target.Term),
			zap.Float64("coverage", healed.ATSCoverage))
	}

	healed.ATSCoverage = Coverage(healed, terms)
	healed.HealingIterations = doc.HealingIterations + iterations
	if healed.ATSCoverage < opts.MinCoverage {
		healed.AddFlag(types.FlagCoverageUnmet)
		log.Warn("coverage floor unmet after healing budget",
			zap.Float64("coverage", healed.ATSCoverage),
			zap.Float64("floor", opts.MinCoverage),
			zap.Int("iterations", iterations))
	}
	return healed, nil
}

// targetBullet picks the bullet to rewrite: the one belonging to the highest
// scoring experience, falling back to the first bullet.
func targetBullet(doc *types.GeneratedDocument, scores []types.ExperienceScore) int {
	if len(doc.Bullets) == 0 {
		return -1
	}
	scoreByID := make(map[string]float64, len(scores))
	for _, es := range scores {
		scoreByID[es.ExperienceID] = es.Score
	}
	best, bestScore := 0, -1.0
	for i, b := range doc.Bullets {
		if s, ok := scoreByID[b.ExperienceID]; ok && s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// lostTerms returns the terms covered before but not after.
func lostTerms(before, after []string) []string {
	afterSet := make(map[string]bool, len(after))
	for _, t := range after {
		afterSet[t] = true
	}
	var lost []string
	for _, t := range before {
		if !afterSet[t] {
			lost = append(lost, t)
		}
	}
	return lost
}

func experienceMap(experiences []types.Experience) map[string]*types.Experience {
	byID := make(map[string]*types.Experience, len(experiences))
	for i := range experiences {
		byID[experiences[i].ID] = &experiences[i]
	}
	return byID
}
