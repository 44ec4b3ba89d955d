// Package graph produces Mermaid diagram markup from transition data.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mberan/tfm/pkg/domain"
)

// Sankey produces Mermaid sankey-beta syntax from transition rates.
// Link width is proportional to transition volume: successful volume
// flows from state to state, failed volume flows into a synthetic FAIL
// node. Pairs below minTransitions are filtered out as noise.
func Sankey(rates domain.Rates, includeFailures bool, minTransitions int) string {
	if len(rates) == 0 {
		return "```mermaid\nsankey-beta\n\nNo transitions recorded\n```"
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("---\n")
	sb.WriteString("config:\n")
	sb.WriteString("  sankey:\n")
	sb.WriteString("    showValues: true\n")
	sb.WriteString("---\n")
	sb.WriteString("sankey-beta\n\n")

	pairs := make([]string, 0, len(rates))
	for pair := range rates {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	for _, pair := range pairs {
		from, to, ok := splitPair(pair)
		if !ok {
			continue
		}
		stats := rates[pair]

		if stats.Successes >= minTransitions {
			fmt.Fprintf(&sb, "%s,%s,%d\n", from, to, stats.Successes)
		}
		if includeFailures && stats.Failures >= minTransitions {
			fmt.Fprintf(&sb, "%s,%s,%d\n", from, domain.FailNode, stats.Failures)
		}
	}

	sb.WriteString("```")
	return sb.String()
}

// SankeySuccessOnly renders the happy path through the workflow,
// omitting failure flows.
func SankeySuccessOnly(rates domain.Rates, minTransitions int) string {
	return Sankey(rates, false, minTransitions)
}

func splitPair(pair string) (from, to string, ok bool) {
	parts := strings.Split(pair, domain.PairSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
