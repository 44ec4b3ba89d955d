package cli

import (
	"fmt"
	"sort"

	"github.com/mberan/tfm/internal/presentation/tui"
)

// Rates handles the 'rates' command logic: parse the log source and
// print one line per transition pair, ordered by failure rate
// descending, with a color-coded severity marker.
func Rates(opts AnalyzeOptions) error {
	opts.defaults()

	tracker, err := buildTracker(&opts)
	if err != nil {
		return err
	}

	rates := tracker.TransitionRates()
	if len(rates) == 0 {
		fmt.Fprintln(opts.Stdout, "No transitions found.")
		return nil
	}

	pairs := make([]string, 0, len(rates))
	for pair := range rates {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		ri, rj := rates[pairs[i]], rates[pairs[j]]
		if ri.FailureRate != rj.FailureRate {
			return ri.FailureRate > rj.FailureRate
		}
		return pairs[i] < pairs[j]
	})

	for _, pair := range pairs {
		fmt.Fprintln(opts.Stdout, tui.RateLine(pair, rates[pair]))
	}
	return nil
}
