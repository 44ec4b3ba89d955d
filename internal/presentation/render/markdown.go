// Package render turns matrix snapshots into Markdown, ASCII and JSON
// reports. All functions are pure: they read a domain.Summary and
// return text, never touching the tracker.
package render

import (
	"fmt"
	"strings"

	"github.com/mberan/tfm/pkg/domain"
)

const (
	markdownTitle = "# Transition Failure Matrix"

	// hotspotMinCount is the fixed reporting floor for the table footers.
	hotspotMinCount = 2

	markdownHotspotLimit = 10
)

// Markdown renders the matrix as a Markdown table: one row per "from"
// state, one column per "to" state, failure counts in bold, a dash for
// zero. The footer lists totals, the failure rate to one decimal, and up
// to ten hotspots with at least two failures.
func Markdown(sum domain.Summary) string {
	if len(sum.States) == 0 {
		return markdownTitle + "\n\nNo transitions found."
	}

	var sb strings.Builder
	sb.WriteString(markdownTitle + "\n\n")
	fmt.Fprintf(&sb, "**Total Transitions:** %d\n", sum.TotalTransitions)
	fmt.Fprintf(&sb, "**Total Failures:** %d\n", sum.TotalFailures)
	fmt.Fprintf(&sb, "**Failure Rate:** %.1f%%\n\n", sum.FailureRate*100)

	header := "| From \\ To |"
	separator := "|-----------|"
	for _, state := range sum.States {
		header += " " + state + " |"
		separator += "--------|"
	}
	sb.WriteString(header + "\n")
	sb.WriteString(separator + "\n")

	for _, from := range sum.States {
		row := "| **" + from + "** |"
		for _, to := range sum.States {
			if count := sum.Matrix[from][to]; count > 0 {
				row += fmt.Sprintf(" **%d** |", count)
			} else {
				row += " - |"
			}
		}
		sb.WriteString(row + "\n")
	}

	hotspots := filterHotspots(sum.Hotspots, hotspotMinCount, markdownHotspotLimit)
	if len(hotspots) > 0 {
		sb.WriteString("\n## Hotspots (failures >= 2)\n\n")
		for _, h := range hotspots {
			fmt.Fprintf(&sb, "- %s -> %s: **%d failures**\n", h.From, h.To, h.Count)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RegressionSection renders a Markdown regression report appended below
// the matrix when a baseline comparison was requested.
func RegressionSection(regressions []domain.Regression) string {
	var sb strings.Builder
	sb.WriteString("\n## Regressions vs Baseline\n\n")
	if len(regressions) == 0 {
		sb.WriteString("No regressions detected.")
		return sb.String()
	}
	for _, reg := range regressions {
		fmt.Fprintf(&sb, "- %s: %.1f%% -> %.1f%% (+%.1f%%, %.0f%% increase)\n",
			reg.Transition, reg.BaselineRate, reg.CurrentRate, reg.Delta, reg.PercentIncrease)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// SlowSection renders a Markdown report of transitions whose average
// duration exceeded the configured threshold.
func SlowSection(slow []domain.SlowTransition, thresholdMS float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n## Slow Transitions (> %.0fms)\n\n", thresholdMS)
	if len(slow) == 0 {
		sb.WriteString("No slow transitions detected.")
		return sb.String()
	}
	for _, s := range slow {
		fmt.Fprintf(&sb, "- %s: %.1fms avg (%d samples)\n", s.Transition, s.AvgDurationMS, s.Samples)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func filterHotspots(hotspots []domain.Hotspot, minCount, limit int) []domain.Hotspot {
	filtered := make([]domain.Hotspot, 0, len(hotspots))
	for _, h := range hotspots {
		if h.Count >= minCount {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
