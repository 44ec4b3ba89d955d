package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/mberan/tfm/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// It auto-detects the terminal background so reports stay readable on
// both light and dark themes.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RateLine formats a single transition rate with a severity marker,
// colored when the terminal supports it. Severity scales with the
// failure rate: >50% hot, >20% warm, >5% mild, else ok.
func RateLine(pair string, stats domain.TransitionStats) string {
	p := termenv.ColorProfile()

	marker := termenv.String("✓").Foreground(p.Color("#22c55e"))
	switch {
	case stats.FailureRate > 50:
		marker = termenv.String("!!!").Foreground(p.Color("#ef4444"))
	case stats.FailureRate > 20:
		marker = termenv.String("!!").Foreground(p.Color("#f97316"))
	case stats.FailureRate > 5:
		marker = termenv.String("!").Foreground(p.Color("#eab308"))
	}

	return fmt.Sprintf("%s %s: %d/%d (%.1f%%) | Avg: %.1fms",
		marker, pair, stats.Failures, stats.Total, stats.FailureRate, stats.AvgDurationMS)
}
