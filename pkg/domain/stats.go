package domain

// TransitionStats aggregates all events (success and failure) for one
// "from → to" pair. FailureRate is a percentage (0..100); the JSON field
// names match the persisted baseline format.
type TransitionStats struct {
	Total         int     `json:"total"`
	Successes     int     `json:"successes"`
	Failures      int     `json:"failures"`
	FailureRate   float64 `json:"failure_rate"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// Rates maps a transition pair label to its aggregated stats.
type Rates map[string]TransitionStats

// Hotspot is a (from, to) pair whose failure count reached a threshold.
type Hotspot struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// SlowTransition reports a pair whose average duration exceeded a
// caller-supplied threshold.
type SlowTransition struct {
	Transition    string  `json:"transition"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	Samples       int     `json:"samples"`
}

// Regression describes a pair whose failure rate increased relative to a
// recorded baseline.
type Regression struct {
	Transition      string  `json:"transition"`
	BaselineRate    float64 `json:"baseline_rate"`
	CurrentRate     float64 `json:"current_rate"`
	Delta           float64 `json:"delta"`
	PercentIncrease float64 `json:"percent_increase"`
}

// Summary is a point-in-time snapshot of the failure matrix. It is also
// the shape of the JSON renderer output.
type Summary struct {
	States           []string                  `json:"states"`
	Matrix           map[string]map[string]int `json:"matrix"`
	Hotspots         []Hotspot                 `json:"hotspots"`
	TotalTransitions int                       `json:"total_transitions"`
	TotalFailures    int                       `json:"total_failures"`

	// FailureRate here is a 0..1 fraction, unlike TransitionStats.
	FailureRate float64 `json:"failure_rate"`
}
