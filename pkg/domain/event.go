package domain

import (
	"time"
)

// TransitionEvent is the record of a single observed state transition.
// Events are immutable once recorded; the tracker retains them in an
// append-only sequence.
type TransitionEvent struct {
	From       string    `json:"from_state"`
	To         string    `json:"to_state"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS float64   `json:"duration_ms"`

	// Error holds the failure message when Success is false.
	Error string `json:"error_message,omitempty"`

	// WorkflowID partitions current-state inference so independent
	// workflow runs can share one tracker.
	WorkflowID string `json:"workflow_id,omitempty"`

	// Metadata is an open key-value bag attached by the caller.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Pair returns the canonical "from → to" label used as the grouping key
// for rates, slow-transition reports and baselines.
func (e TransitionEvent) Pair() string {
	return e.From + PairSeparator + e.To
}
