package gateway

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProviderTimeoutError reports a provider call that exceeded its hard per-call
// timeout. The same provider is never retried; the gateway moves on.
type ProviderTimeoutError struct {
	Provider string
	Timeout  time.Duration
}

func (e *ProviderTimeoutError) Error() string {
	return fmt.Sprintf("provider %s timed out after %s", e.Provider, e.Timeout)
}

// ProviderMalformedOutputError reports output that failed schema or content
// validation. Treated exactly like a transport failure.
type ProviderMalformedOutputError struct {
	Provider string
	Cause    error
}

func (e *ProviderMalformedOutputError) Error() string {
	return fmt.Sprintf("provider %s returned malformed output: %v", e.Provider, e.Cause)
}

func (e *ProviderMalformedOutputError) Unwrap() error {
	return e.Cause
}

// ProviderFailure is one recorded attempt inside an exhausted chain.
type ProviderFailure struct {
	Provider string
	Reason   string
}

// AllProvidersExhaustedError signals that every eligible provider failed for
// a task. Callers decide whether a deterministic fallback exists.
type AllProvidersExhaustedError struct {
	Task     TaskKind
	Failures []ProviderFailure
}

func (e *AllProvidersExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("no provider eligible for task %s", e.Task)
	}
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, fmt.Sprintf("%s: %s", f.Provider, f.Reason))
	}
	return fmt.Sprintf("all providers exhausted for task %s: %s", e.Task, strings.Join(reasons, "; "))
}

// IsExhausted reports whether err is (or wraps) an exhausted-chain error.
func IsExhausted(err error) bool {
	var e *AllProvidersExhaustedError
	return errors.As(err, &e)
}
