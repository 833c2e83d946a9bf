package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// RunAll processes independent postings concurrently, at most maxParallel at
// a time. Each posting runs its stages strictly in order; the first fatal
// error cancels the remaining runs. Results come back in input order.
func (p *Pipeline) RunAll(ctx context.Context, postings []*types.JobPosting, masterProfile *types.MasterProfile, opts Options, maxParallel int) ([]*Result, error) {
	if maxParallel < 1 {
		maxParallel = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	results := make([]*Result, len(postings))
	for i, posting := range postings {
		g.Go(func() error {
			result, err := p.Run(ctx, posting, masterProfile, opts)
			if err != nil {
				p.log.Error("run failed",
					zap.String("posting_id", posting.ID),
					zap.Error(err))
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
