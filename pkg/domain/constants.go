package domain

const (
	// StateStart is the sentinel source state used when a workflow has
	// not yet entered any state.
	StateStart = "START"

	// DefaultWorkflow is the workflow identifier used when the caller
	// does not partition runs explicitly.
	DefaultWorkflow = "default"

	// FailNode is the synthetic sink node failed transitions flow into
	// on the sankey diagram.
	FailNode = "FAIL"

	// PairSeparator joins from/to labels into a transition key.
	PairSeparator = " → "
)
