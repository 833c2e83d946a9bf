package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scriptable chain member for tests.
type fakeProvider struct {
	name     string
	tasks    map[TaskKind]bool
	timeout  time.Duration
	calls    int
	generate func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Supports(task TaskKind) bool {
	return f.tasks == nil || f.tasks[task]
}

func (f *fakeProvider) Timeout() time.Duration { return f.timeout }

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.generate(ctx, prompt)
}

func succeeding(name, output string) *fakeProvider {
	return &fakeProvider{
		name: name,
		generate: func(context.Context, string) (string, error) {
			return output, nil
		},
	}
}

func failing(name string) *fakeProvider {
	return &fakeProvider{
		name: name,
		generate: func(context.Context, string) (string, error) {
			return "", errors.New("boom")
		},
	}
}

func TestInvokeFirstProviderWins(t *testing.T) {
	first := succeeding("first", "one")
	second := succeeding("second", "two")
	gw := New([]Provider{first, second}, Options{})

	out, err := gw.Invoke(context.Background(), TaskKeywordExtraction, "p", nil)

	require.NoError(t, err)
	assert.Equal(t, "one", out)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "second provider should not be consulted")
}

func TestInvokeFallsBackOnFailure(t *testing.T) {
	first := failing("first")
	second := succeeding("second", "two")
	gw := New([]Provider{first, second}, Options{})

	out, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)

	require.NoError(t, err)
	assert.Equal(t, "two", out)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestInvokeSkipsIneligibleProviders(t *testing.T) {
	extractOnly := succeeding("extract-only", "nope")
	extractOnly.tasks = map[TaskKind]bool{TaskKeywordExtraction: true}
	general := succeeding("general", "yes")
	gw := New([]Provider{extractOnly, general}, Options{})

	out, err := gw.Invoke(context.Background(), TaskNarrativeSynthesis, "p", nil)

	require.NoError(t, err)
	assert.Equal(t, "yes", out)
	assert.Equal(t, 0, extractOnly.calls)
}

func TestInvokeExhaustionCarriesPerProviderReasons(t *testing.T) {
	gw := New([]Provider{failing("a"), failing("b")}, Options{})

	_, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)

	require.Error(t, err)
	var exhausted *AllProvidersExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, TaskScoring, exhausted.Task)
	require.Len(t, exhausted.Failures, 2)
	assert.Equal(t, "a", exhausted.Failures[0].Provider)
	assert.Equal(t, "b", exhausted.Failures[1].Provider)
	assert.True(t, IsExhausted(err))
}

func TestInvokeNoEligibleProvider(t *testing.T) {
	only := succeeding("only", "x")
	only.tasks = map[TaskKind]bool{TaskScoring: true}
	gw := New([]Provider{only}, Options{})

	_, err := gw.Invoke(context.Background(), TaskNarrativeSynthesis, "p", nil)

	require.True(t, IsExhausted(err))
	var exhausted *AllProvidersExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Empty(t, exhausted.Failures)
}

func TestInvokeValidationRejectionMovesOn(t *testing.T) {
	bad := succeeding("bad", "not json")
	good := succeeding("good", `{"ok":true}`)
	gw := New([]Provider{bad, good}, Options{})

	validate := func(output string) error {
		if output != `{"ok":true}` {
			return fmt.Errorf("unexpected payload")
		}
		return nil
	}
	out, err := gw.Invoke(context.Background(), TaskKeywordExtraction, "p", validate)

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, 1, bad.calls)
}

func TestInvokeEmptyOutputIsMalformed(t *testing.T) {
	empty := succeeding("empty", "")
	gw := New([]Provider{empty}, Options{})

	_, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)

	var exhausted *AllProvidersExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Len(t, exhausted.Failures, 1)
	assert.Contains(t, exhausted.Failures[0].Reason, "malformed")
}

func TestInvokeTimeoutClassified(t *testing.T) {
	slow := &fakeProvider{
		name:    "slow",
		timeout: 10 * time.Millisecond,
		generate: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	gw := New([]Provider{slow}, Options{})

	_, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)

	var exhausted *AllProvidersExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Len(t, exhausted.Failures, 1)
	assert.Contains(t, exhausted.Failures[0].Reason, "timed out")
}

func TestInvokeParentCancellationIsNotAProviderFault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &fakeProvider{
		name: "p",
		generate: func(ctx context.Context, _ string) (string, error) {
			cancel()
			return "", ctx.Err()
		},
	}
	gw := New([]Provider{p}, Options{})

	_, err := gw.Invoke(ctx, TaskScoring, "p", nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsExhausted(err))
}

func TestCooldownTripsAfterConsecutiveFailures(t *testing.T) {
	flaky := failing("flaky")
	backup := succeeding("backup", "ok")
	gw := New([]Provider{flaky, backup}, Options{FailureThreshold: 2, Cooldown: time.Minute})

	now := time.Unix(1000, 0)
	gw.now = func() time.Time { return now }

	// Two failures trip the cooldown.
	for i := 0; i < 2; i++ {
		out, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}
	assert.Equal(t, 2, flaky.calls)

	// While cooling, flaky is skipped without a call.
	_, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, flaky.calls)

	// After the window it gets one probation attempt again.
	now = now.Add(2 * time.Minute)
	_, err = gw.Invoke(context.Background(), TaskScoring, "p", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, flaky.calls)

	// Probation: a single further failure re-trips immediately.
	_, err = gw.Invoke(context.Background(), TaskScoring, "p", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, flaky.calls, "provider should be cooling again after one probation failure")
}

func TestSuccessResetsHealth(t *testing.T) {
	attempts := 0
	flaky := &fakeProvider{
		name: "flaky",
		generate: func(context.Context, string) (string, error) {
			attempts++
			if attempts == 1 {
				return "", errors.New("boom")
			}
			return "fine", nil
		},
	}
	gw := New([]Provider{flaky, succeeding("backup", "ok")}, Options{FailureThreshold: 2, Cooldown: time.Minute})

	_, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)
	require.NoError(t, err)

	out, err := gw.Invoke(context.Background(), TaskScoring, "p", nil)
	require.NoError(t, err)
	assert.Equal(t, "fine", out)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 0, gw.health["flaky"].consecutive)
}

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSONBlock("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSONBlock(`{"a":1}`))
}
