package cli

import (
	"fmt"
	"io"

	"github.com/mberan/tfm/internal/presentation/graph"
)

// GraphOptions configures the 'graph' command.
type GraphOptions struct {
	LogFile        string
	MinTransitions int
	SuccessOnly    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Graph handles the 'graph' command logic: parse the log source and emit
// a Mermaid sankey diagram of the transition flows.
func Graph(opts GraphOptions) error {
	inner := AnalyzeOptions{
		LogFile: opts.LogFile,
		Stdin:   opts.Stdin,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
	}
	inner.defaults()

	tracker, err := buildTracker(&inner)
	if err != nil {
		return err
	}

	rates := tracker.TransitionRates()
	output := graph.Sankey(rates, !opts.SuccessOnly, opts.MinTransitions)
	fmt.Fprintln(inner.Stdout, output)
	return nil
}
