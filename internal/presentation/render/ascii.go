package render

import (
	"fmt"
	"strings"

	"github.com/mberan/tfm/pkg/domain"
)

const (
	asciiMinColWidth  = 4
	asciiHotspotLimit = 5

	// zeroCell marks an empty matrix cell so real counts stand out.
	zeroCell = "·"
)

// ASCII renders the matrix as a plain-text grid. Column width adapts to
// the longest state label (minimum 4); empty cells show a middle dot.
// Up to five hotspots with at least two failures are appended.
func ASCII(sum domain.Summary) string {
	if len(sum.States) == 0 {
		return "No transitions found."
	}

	colWidth := asciiMinColWidth
	for _, state := range sum.States {
		if len(state) > colWidth {
			colWidth = len(state)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total Transitions: %d\n", sum.TotalTransitions)
	fmt.Fprintf(&sb, "Total Failures: %d\n\n", sum.TotalFailures)

	header := strings.Repeat(" ", colWidth+3)
	for _, state := range sum.States {
		header += center(state, colWidth) + " "
	}
	sb.WriteString(header + "\n")
	sb.WriteString(strings.Repeat("-", len([]rune(header))) + "\n")

	for _, from := range sum.States {
		row := fmt.Sprintf("%*s |", colWidth, from)
		for _, to := range sum.States {
			cell := zeroCell
			if count := sum.Matrix[from][to]; count > 0 {
				cell = fmt.Sprintf("%d", count)
			}
			row += center(cell, colWidth) + " "
		}
		sb.WriteString(strings.TrimRight(row, " ") + "\n")
	}

	hotspots := filterHotspots(sum.Hotspots, hotspotMinCount, asciiHotspotLimit)
	if len(hotspots) > 0 {
		sb.WriteString("\nHotspots:\n")
		for _, h := range hotspots {
			fmt.Fprintf(&sb, "  %s -> %s: %d\n", h.From, h.To, h.Count)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// center pads s to width, splitting the slack evenly. Width is counted
// in runes so the middle-dot placeholder lines up.
func center(s string, width int) string {
	slack := width - len([]rune(s))
	if slack <= 0 {
		return s
	}
	left := slack / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", slack-left)
}
