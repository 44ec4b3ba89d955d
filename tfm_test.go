package tfm_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberan/tfm"
	"github.com/mberan/tfm/pkg/domain"
)

func TestRecord_TotalsInvariant(t *testing.T) {
	tracker := tfm.New()

	tracker.Record("A", "B", true, 10)
	tracker.Record("B", "C", false, 20, tfm.WithError("boom"))
	tracker.Record("B", "C", false, 15)
	tracker.Record("C", "D", true, 5)

	sum := tracker.Summary()
	assert.Equal(t, 4, sum.TotalTransitions)
	assert.Equal(t, 2, sum.TotalFailures)

	// Sum of matrix cells must equal the failed-event count.
	cells := 0
	for _, row := range sum.Matrix {
		for _, count := range row {
			cells += count
		}
	}
	assert.Equal(t, sum.TotalFailures, cells)
}

func TestRecord_SpecScenario(t *testing.T) {
	tracker := tfm.New()

	tracker.Record("A", "B", true, 10)
	tracker.Record("B", "C", false, 20)
	tracker.Record("B", "C", false, 15)

	sum := tracker.Summary()
	require.Equal(t, 3, sum.TotalTransitions)
	require.Equal(t, 2, sum.TotalFailures)

	hotspots := tracker.Hotspots(2)
	require.Len(t, hotspots, 1)
	assert.Equal(t, domain.Hotspot{From: "B", To: "C", Count: 2}, hotspots[0])

	rates := tracker.TransitionRates()
	bc := rates["B"+domain.PairSeparator+"C"]
	assert.Equal(t, 2, bc.Total)
	assert.Equal(t, 0, bc.Successes)
	assert.Equal(t, 2, bc.Failures)
	assert.InDelta(t, 100.0, bc.FailureRate, 1e-9)
	assert.InDelta(t, 17.5, bc.AvgDurationMS, 1e-9)
}

func TestTransitionRates_PartsSumToTotal(t *testing.T) {
	tracker := tfm.New()
	tracker.Record("A", "B", true, 1)
	tracker.Record("A", "B", false, 2)
	tracker.Record("A", "B", true, 3)
	tracker.Record("B", "C", false, 4)

	for pair, stats := range tracker.TransitionRates() {
		assert.Equal(t, stats.Total, stats.Successes+stats.Failures, "pair %s", pair)
	}
}

func TestHotspots_OrderingAndStability(t *testing.T) {
	tracker := tfm.New()
	tracker.Record("A", "B", false, 0)
	tracker.Record("C", "D", false, 0)
	tracker.Record("B", "C", false, 0)
	tracker.Record("B", "C", false, 0)
	tracker.Record("B", "C", false, 0)
	tracker.Record("A", "B", false, 0)
	tracker.Record("C", "D", false, 0)

	want := []domain.Hotspot{
		{From: "B", To: "C", Count: 3},
		// A->B and C->D tie at 2; A->B failed first.
		{From: "A", To: "B", Count: 2},
		{From: "C", To: "D", Count: 2},
	}
	assert.Equal(t, want, tracker.Hotspots(1))

	// Repeated calls on unchanged state must be identical.
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, tracker.Hotspots(1))
	}

	// minCount filters below-threshold pairs.
	assert.Len(t, tracker.Hotspots(3), 1)
	assert.Empty(t, tracker.Hotspots(4))
}

func TestCurrentState_SentinelAndWorkflowIsolation(t *testing.T) {
	tracker := tfm.New()

	assert.Equal(t, domain.StateStart, tracker.CurrentState("default"))

	tracker.Record("START", "Parse", true, 1, tfm.InWorkflow("wf-1"))
	tracker.Record("START", "Classify", true, 1, tfm.InWorkflow("wf-2"))
	// A failure must not advance the current state.
	tracker.Record("Parse", "Execute", false, 1, tfm.InWorkflow("wf-1"))

	assert.Equal(t, "Parse", tracker.CurrentState("wf-1"))
	assert.Equal(t, "Classify", tracker.CurrentState("wf-2"))
	assert.Equal(t, domain.StateStart, tracker.CurrentState("wf-3"))
}

func TestSetState(t *testing.T) {
	tracker := tfm.New()
	tracker.SetState("default", "Execute")
	assert.Equal(t, "Execute", tracker.CurrentState("default"))

	tracker.SetState("", "Parse")
	assert.Equal(t, "Parse", tracker.CurrentState(domain.DefaultWorkflow))
}

func TestAllStates_FixedVersusDiscovered(t *testing.T) {
	t.Run("fixed list returned verbatim", func(t *testing.T) {
		tracker := tfm.New(tfm.WithStates([]string{"Zeta", "Alpha"}))
		tracker.Record("Other", "Thing", true, 0)
		assert.Equal(t, []string{"Zeta", "Alpha"}, tracker.AllStates())
	})

	t.Run("discovered states sorted lexicographically", func(t *testing.T) {
		tracker := tfm.New()
		tracker.Record("b", "a", true, 0)
		tracker.Record("c", "a", false, 0)
		assert.Equal(t, []string{"a", "b", "c"}, tracker.AllStates())
	})

	t.Run("state labels are case sensitive", func(t *testing.T) {
		tracker := tfm.New()
		tracker.Record("parse", "Parse", true, 0)
		assert.Equal(t, []string{"Parse", "parse"}, tracker.AllStates())
	})
}

func TestSlowTransitions(t *testing.T) {
	tracker := tfm.New()
	tracker.Record("A", "B", true, 10)
	tracker.Record("A", "B", true, 20) // avg 15
	tracker.Record("B", "C", true, 100)
	tracker.Record("C", "D", true, 40)

	slow := tracker.SlowTransitions(30)
	require.Len(t, slow, 2)
	assert.Equal(t, "B"+domain.PairSeparator+"C", slow[0].Transition)
	assert.InDelta(t, 100.0, slow[0].AvgDurationMS, 1e-9)
	assert.Equal(t, 1, slow[0].Samples)
	assert.Equal(t, "C"+domain.PairSeparator+"D", slow[1].Transition)

	assert.Empty(t, tracker.SlowTransitions(1000))
}

func TestReset(t *testing.T) {
	tracker := tfm.New()
	tracker.Record("A", "B", false, 1)
	tracker.Record("A", "B", true, 1)
	tracker.Reset()

	sum := tracker.Summary()
	assert.Zero(t, sum.TotalTransitions)
	assert.Zero(t, sum.TotalFailures)
	assert.Empty(t, sum.States)
	assert.Empty(t, tracker.Events())
	assert.Equal(t, domain.StateStart, tracker.CurrentState("default"))
}

func TestFailureCount(t *testing.T) {
	tracker := tfm.New()
	tracker.Record("A", "B", false, 0)
	tracker.Record("A", "B", false, 0)
	assert.Equal(t, 2, tracker.FailureCount("A", "B"))
	assert.Zero(t, tracker.FailureCount("B", "A"))
}

func TestRecord_EmitsTransitionLogLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tracker := tfm.New(tfm.WithLogger(logger))

	tracker.Record("Parse", "Execute", false, 12.5, tfm.WithError("query too short"))
	assert.Contains(t, buf.String(), "TRANSITION: Parse -> Execute FAILURE ERROR: query too short")

	buf.Reset()
	tracker.Record("Parse", "Execute", true, 3)
	assert.Contains(t, buf.String(), "TRANSITION: Parse -> Execute SUCCESS")
	assert.NotContains(t, buf.String(), "ERROR:")
}

func TestRecord_ObserverPanicIsSwallowed(t *testing.T) {
	var seen []domain.TransitionEvent
	tracker := tfm.New(
		tfm.WithObserver(func(ev domain.TransitionEvent) {
			panic("observer blew up")
		}),
		tfm.WithObserver(func(ev domain.TransitionEvent) {
			seen = append(seen, ev)
		}),
	)

	assert.NotPanics(t, func() {
		tracker.Record("A", "B", true, 1)
	})
	// The second observer still ran.
	require.Len(t, seen, 1)
	assert.Equal(t, "B", seen[0].To)
}

func TestRecord_ClockAndMetadata(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	tracker := tfm.New(tfm.WithClock(func() time.Time { return fixed }))

	tracker.Record("A", "B", true, 1, tfm.WithMetadata(map[string]any{"attempt": 3}))

	events := tracker.Events()
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, 3, events[0].Metadata["attempt"])
}

func TestSummary_FailureRateFraction(t *testing.T) {
	tracker := tfm.New()
	assert.Zero(t, tracker.Summary().FailureRate)

	tracker.Record("A", "B", true, 0)
	tracker.Record("A", "B", false, 0)
	tracker.Record("A", "B", false, 0)
	tracker.Record("A", "B", false, 0)
	assert.InDelta(t, 0.75, tracker.Summary().FailureRate, 1e-9)
}
