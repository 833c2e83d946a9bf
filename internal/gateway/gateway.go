// Package gateway wraps the ordered inference providers behind a single call
// contract. For a given task kind it tries each eligible provider in priority
// order until one returns output that passes validation, or every provider is
// exhausted. The gateway holds no state across calls other than a rolling
// per-provider health counter used to temporarily deprioritize a provider
// after consecutive failures.
package gateway

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/logger"
)

// TaskKind identifies the class of inference work being requested. Providers
// declare which kinds they are eligible for.
type TaskKind string

// Task kinds routed through the gateway.
const (
	TaskKeywordExtraction  TaskKind = "keyword_extraction"
	TaskScoring            TaskKind = "scoring"
	TaskNarrativeSynthesis TaskKind = "narrative_synthesis"
)

// Provider is one adapter in the fallback chain.
type Provider interface {
	// Name identifies the provider in logs and failure reports.
	Name() string
	// Supports reports whether the provider is eligible for the task kind.
	Supports(task TaskKind) bool
	// Timeout is the hard per-call bound applied by the gateway.
	Timeout() time.Duration
	// Generate performs one inference call. It must honor ctx cancellation.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ValidateFunc checks provider output before the gateway accepts it. A
// non-nil error marks the output malformed and moves on to the next provider.
type ValidateFunc func(output string) error

// Gateway is the multi-tier fallback chain.
type Gateway struct {
	providers []Provider
	log       *zap.Logger

	mu     sync.Mutex
	health map[string]*providerHealth

	failureThreshold int
	cooldown         time.Duration
	now              func() time.Time
}

// Options tunes gateway health tracking.
type Options struct {
	// FailureThreshold is how many consecutive failures put a provider into
	// cooldown. Zero means 3.
	FailureThreshold int
	// Cooldown is how long a tripped provider is skipped before being retried.
	Cooldown time.Duration
	Logger   *zap.Logger
}

// New builds a gateway over providers in the given priority order.
func New(providers []Provider, opts Options) *Gateway {
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 3
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Gateway{
		providers:        providers,
		log:              opts.Logger.Named("gateway"),
		health:           make(map[string]*providerHealth),
		failureThreshold: opts.FailureThreshold,
		cooldown:         opts.Cooldown,
		now:              time.Now,
	}
}

// Invoke runs the fallback chain for one task. Each eligible provider gets a
// single attempt bounded by its timeout; a timeout, transport error, or
// validation rejection records the failure and moves to the next provider.
// When no provider succeeds, Invoke returns *AllProvidersExhaustedError and
// the caller decides whether a deterministic fallback exists.
func (g *Gateway) Invoke(ctx context.Context, task TaskKind, prompt string, validate ValidateFunc) (string, error) {
	var failures []ProviderFailure

	for _, p := range g.providers {
		if !p.Supports(task) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !g.available(p.Name()) {
			g.log.Debug("provider cooling down, skipped",
				zap.String("provider", p.Name()), zap.String("task", string(task)))
			failures = append(failures, ProviderFailure{Provider: p.Name(), Reason: "cooling down"})
			continue
		}

		output, err := g.attempt(ctx, p, prompt)
		if err == nil && validate != nil {
			if verr := validate(output); verr != nil {
				err = &ProviderMalformedOutputError{Provider: p.Name(), Cause: verr}
			}
		}
		if err != nil {
			// A parent-context cancellation is the caller's abort, not a
			// provider fault.
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			g.recordFailure(p.Name())
			g.log.Warn("provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("task", string(task)),
				zap.Error(err))
			failures = append(failures, ProviderFailure{Provider: p.Name(), Reason: err.Error()})
			continue
		}

		g.recordSuccess(p.Name())
		g.log.Debug("provider succeeded",
			zap.String("provider", p.Name()),
			zap.String("task", string(task)),
			zap.String("output", logger.Truncate(output, 120)))
		return output, nil
	}

	return "", &AllProvidersExhaustedError{Task: task, Failures: failures}
}

// attempt performs one bounded provider call and classifies its failure.
func (g *Gateway) attempt(ctx context.Context, p Provider, prompt string) (string, error) {
	callCtx := ctx
	if p.Timeout() > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.Timeout())
		defer cancel()
	}

	output, err := p.Generate(callCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", &ProviderTimeoutError{Provider: p.Name(), Timeout: p.Timeout()}
		}
		return "", err
	}
	if output == "" {
		return "", &ProviderMalformedOutputError{Provider: p.Name(), Cause: errors.New("empty response")}
	}
	return output, nil
}
