package tfm

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mberan/tfm/pkg/domain"
)

// Observer receives a copy of every recorded event. Observers are
// fire-and-forget: a panicking observer never propagates back into the
// caller of Record.
type Observer func(domain.TransitionEvent)

// Tracker owns the append-only event sequence and the derived failure
// matrix. It is safe for concurrent use; Record calls are serialized so
// the matrix and event sequence stay consistent.
type Tracker struct {
	mu          sync.Mutex
	now         func() time.Time
	logger      *slog.Logger
	observers   []Observer
	fixedStates []string

	events  []domain.TransitionEvent
	matrix  map[string]map[string]int
	current map[string]string // workflow id -> last successfully entered state

	// failOrder remembers the first-failure order of (from, to) pairs so
	// hotspot ties resolve deterministically.
	failOrder     [][2]string
	totalFailures int
}

// Option defines a functional option for configuring the Tracker.
type Option func(*Tracker)

// WithStates fixes the display ordering of states. When set, AllStates
// returns this list verbatim instead of the discovered set.
func WithStates(states []string) Option {
	return func(t *Tracker) {
		t.fixedStates = append([]string(nil), states...)
	}
}

// WithLogger sets a structured logger for transition log emission.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver registers an observability hook invoked after every
// recorded event (e.g. the Prometheus recorder).
func WithObserver(fn Observer) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.observers = append(t.observers, fn)
		}
	}
}

// WithClock injects a time source. Used by tests to make timestamps and
// wrapper timings deterministic.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates an empty Tracker. By default it logs to a discard handler;
// inject a real logger with WithLogger to emit parseable TRANSITION lines.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		matrix:  make(map[string]map[string]int),
		current: make(map[string]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordOption customizes a single recorded event.
type RecordOption func(*domain.TransitionEvent)

// WithError attaches a failure message to the event.
func WithError(msg string) RecordOption {
	return func(ev *domain.TransitionEvent) {
		ev.Error = msg
	}
}

// InWorkflow records the event under a specific workflow identifier
// instead of domain.DefaultWorkflow.
func InWorkflow(id string) RecordOption {
	return func(ev *domain.TransitionEvent) {
		if id != "" {
			ev.WorkflowID = id
		}
	}
}

// WithMetadata attaches an open key-value bag to the event.
func WithMetadata(md map[string]any) RecordOption {
	return func(ev *domain.TransitionEvent) {
		ev.Metadata = md
	}
}

// Record appends a transition event. Failures increment the matrix cell
// for (from, to); successes advance the workflow's current state. Record
// has no failure mode: any non-empty pair of labels is accepted.
func (t *Tracker) Record(from, to string, success bool, durationMS float64, opts ...RecordOption) {
	ev := domain.TransitionEvent{
		From:       from,
		To:         to,
		Success:    success,
		DurationMS: durationMS,
		WorkflowID: domain.DefaultWorkflow,
	}
	for _, opt := range opts {
		opt(&ev)
	}

	t.mu.Lock()
	ev.Timestamp = t.now()
	t.events = append(t.events, ev)
	if success {
		t.current[ev.WorkflowID] = to
	} else {
		row, ok := t.matrix[from]
		if !ok {
			row = make(map[string]int)
			t.matrix[from] = row
		}
		if row[to] == 0 {
			t.failOrder = append(t.failOrder, [2]string{from, to})
		}
		row[to]++
		t.totalFailures++
	}
	t.mu.Unlock()

	t.emitLog(ev)
	t.notify(ev)
}

// emitLog writes the fixed-format line consumed by the log ingestor.
func (t *Tracker) emitLog(ev domain.TransitionEvent) {
	status := "SUCCESS"
	if !ev.Success {
		status = "FAILURE"
	}
	msg := fmt.Sprintf("TRANSITION: %s -> %s %s", ev.From, ev.To, status)
	if ev.Error != "" {
		msg += " ERROR: " + ev.Error
	}
	t.logger.Info(msg,
		"from_state", ev.From,
		"to_state", ev.To,
		"success", ev.Success,
		"duration_ms", ev.DurationMS,
		"workflow_id", ev.WorkflowID,
	)
}

func (t *Tracker) notify(ev domain.TransitionEvent) {
	for _, fn := range t.observers {
		func() {
			defer func() {
				_ = recover()
			}()
			fn(ev)
		}()
	}
}

// SetState explicitly sets the current state for a workflow, without
// recording an event. Useful to reset a workflow to START between runs.
func (t *Tracker) SetState(workflowID, state string) {
	if workflowID == "" {
		workflowID = domain.DefaultWorkflow
	}
	t.mu.Lock()
	t.current[workflowID] = state
	t.mu.Unlock()
}

// CurrentState returns the most recently successfully entered state for
// a workflow, or domain.StateStart when the workflow has not entered any
// state yet.
func (t *Tracker) CurrentState(workflowID string) string {
	if workflowID == "" {
		workflowID = domain.DefaultWorkflow
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.current[workflowID]; ok {
		return state
	}
	return domain.StateStart
}

// AllStates returns the display ordering of states: the fixed list when
// one was configured, otherwise every state touched by any event, sorted
// lexicographically. The result is stable for identical input.
func (t *Tracker) AllStates() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allStatesLocked()
}

func (t *Tracker) allStatesLocked() []string {
	if len(t.fixedStates) > 0 {
		return append([]string(nil), t.fixedStates...)
	}
	seen := make(map[string]struct{})
	for _, ev := range t.events {
		seen[ev.From] = struct{}{}
		seen[ev.To] = struct{}{}
	}
	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Hotspots returns the (from, to) pairs with at least minCount failures,
// sorted by count descending. Ties keep the order in which the pairs
// first failed, so repeated calls on the same state are identical.
func (t *Tracker) Hotspots(minCount int) []domain.Hotspot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hotspotsLocked(minCount)
}

func (t *Tracker) hotspotsLocked(minCount int) []domain.Hotspot {
	hotspots := make([]domain.Hotspot, 0, len(t.failOrder))
	for _, pair := range t.failOrder {
		count := t.matrix[pair[0]][pair[1]]
		if count >= minCount {
			hotspots = append(hotspots, domain.Hotspot{From: pair[0], To: pair[1], Count: count})
		}
	}
	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].Count > hotspots[j].Count
	})
	return hotspots
}

// FailureCount returns the number of failed events recorded for the
// ordered pair (from, to).
func (t *Tracker) FailureCount(from, to string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.matrix[from][to]
}

// TransitionRates groups all events (success and failure) by ordered
// pair and returns per-pair totals, failure rate (percent) and average
// duration. Rates never divide by zero.
func (t *Tracker) TransitionRates() domain.Rates {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ratesLocked()
}

type rateAccumulator struct {
	total    int
	failures int
	duration float64
}

func (t *Tracker) ratesLocked() domain.Rates {
	acc := make(map[string]*rateAccumulator)
	for _, ev := range t.events {
		pair := ev.Pair()
		a, ok := acc[pair]
		if !ok {
			a = &rateAccumulator{}
			acc[pair] = a
		}
		a.total++
		a.duration += ev.DurationMS
		if !ev.Success {
			a.failures++
		}
	}

	rates := make(domain.Rates, len(acc))
	for pair, a := range acc {
		stats := domain.TransitionStats{
			Total:     a.total,
			Successes: a.total - a.failures,
			Failures:  a.failures,
		}
		if a.total > 0 {
			stats.FailureRate = float64(a.failures) / float64(a.total) * 100
			stats.AvgDurationMS = a.duration / float64(a.total)
		}
		rates[pair] = stats
	}
	return rates
}

// SlowTransitions returns the pairs whose average duration exceeds
// thresholdMS, sorted by average duration descending.
func (t *Tracker) SlowTransitions(thresholdMS float64) []domain.SlowTransition {
	rates := t.TransitionRates()

	pairs := make([]string, 0, len(rates))
	for pair := range rates {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	slow := make([]domain.SlowTransition, 0)
	for _, pair := range pairs {
		stats := rates[pair]
		if stats.AvgDurationMS > thresholdMS {
			slow = append(slow, domain.SlowTransition{
				Transition:    pair,
				AvgDurationMS: stats.AvgDurationMS,
				Samples:       stats.Total,
			})
		}
	}
	sort.SliceStable(slow, func(i, j int) bool {
		return slow[i].AvgDurationMS > slow[j].AvgDurationMS
	})
	return slow
}

// Events returns a copy of the recorded event sequence, in order.
func (t *Tracker) Events() []domain.TransitionEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.TransitionEvent(nil), t.events...)
}

// Summary snapshots the current matrix state: states in display order,
// the nested failure-count matrix, all hotspots, totals and the overall
// failure rate as a 0..1 fraction.
func (t *Tracker) Summary() domain.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	matrix := make(map[string]map[string]int, len(t.matrix))
	for from, row := range t.matrix {
		cells := make(map[string]int, len(row))
		for to, count := range row {
			cells[to] = count
		}
		matrix[from] = cells
	}

	sum := domain.Summary{
		States:           t.allStatesLocked(),
		Matrix:           matrix,
		Hotspots:         t.hotspotsLocked(1),
		TotalTransitions: len(t.events),
		TotalFailures:    t.totalFailures,
	}
	if sum.TotalTransitions > 0 {
		sum.FailureRate = float64(sum.TotalFailures) / float64(sum.TotalTransitions)
	}
	return sum
}

// Reset clears events, failure counts and the current-state map. Used to
// isolate repeated runs sharing one tracker.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
	t.matrix = make(map[string]map[string]int)
	t.current = make(map[string]string)
	t.failOrder = nil
	t.totalFailures = 0
}
