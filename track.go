package tfm

import (
	"context"
	"fmt"
	"time"

	"github.com/mberan/tfm/pkg/domain"
)

type workflowKey struct{}

// WithWorkflow returns a context carrying the workflow identifier used
// by the tracking wrappers to partition current-state inference.
func WithWorkflow(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, workflowKey{}, id)
}

// WorkflowFromContext extracts the workflow identifier, defaulting to
// domain.DefaultWorkflow.
func WorkflowFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(workflowKey{}).(string); ok && id != "" {
		return id
	}
	return domain.DefaultWorkflow
}

// Track runs fn as the transition into state. The source state is
// inferred from the workflow's current state, the call is timed, and
// success or failure is recorded before the outcome is returned
// unchanged. A panic inside fn is recorded as a failure and re-raised.
//
// Blocking and immediately-returning units of work are handled
// identically; the wrapper only observes the call boundary.
func Track(ctx context.Context, t *Tracker, state string, fn func(context.Context) error) error {
	workflow := WorkflowFromContext(ctx)
	from := t.CurrentState(workflow)
	start := t.now()

	defer func() {
		if r := recover(); r != nil {
			t.Record(from, state, false, msSince(t, start),
				WithError(fmt.Sprint(r)), InWorkflow(workflow))
			panic(r)
		}
	}()

	err := fn(ctx)
	elapsed := msSince(t, start)
	if err != nil {
		t.Record(from, state, false, elapsed, WithError(err.Error()), InWorkflow(workflow))
		return err
	}
	t.Record(from, state, true, elapsed, InWorkflow(workflow))
	return nil
}

// TrackResult is Track for units of work that return a value. The value
// and error pass through unchanged.
func TrackResult[T any](ctx context.Context, t *Tracker, state string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := Track(ctx, t, state, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	return result, err
}

// TrackTransition runs fn as an explicitly named from→to transition,
// bypassing current-state inference. Use it when both endpoints are
// known at the call site.
func TrackTransition(ctx context.Context, t *Tracker, from, to string, fn func(context.Context) error) error {
	workflow := WorkflowFromContext(ctx)
	start := t.now()

	defer func() {
		if r := recover(); r != nil {
			t.Record(from, to, false, msSince(t, start),
				WithError(fmt.Sprint(r)), InWorkflow(workflow))
			panic(r)
		}
	}()

	err := fn(ctx)
	elapsed := msSince(t, start)
	if err != nil {
		t.Record(from, to, false, elapsed, WithError(err.Error()), InWorkflow(workflow))
		return err
	}
	t.Record(from, to, true, elapsed, InWorkflow(workflow))
	return nil
}

func msSince(t *Tracker, start time.Time) float64 {
	return float64(t.now().Sub(start)) / float64(time.Millisecond)
}
