package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberan/tfm/internal/presentation/render"
	"github.com/mberan/tfm/pkg/domain"
)

func TestASCII_NoData(t *testing.T) {
	assert.Equal(t, "No transitions found.", render.ASCII(domain.Summary{}))
}

func TestASCII_Grid(t *testing.T) {
	out := render.ASCII(fixtureSummary())
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Total Transitions: 10", lines[0])
	assert.Equal(t, "Total Failures: 4", lines[1])

	// Column width adapts to the longest label ("Classify", 8 chars):
	// every row label is right-aligned into that width.
	assert.Contains(t, out, "Classify |")
	assert.Contains(t, out, " Execute |")
	assert.Contains(t, out, "   Parse |")

	// Non-zero cells show the count, zero cells the placeholder dot.
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "·")

	// Hotspots capped at five, floor of two failures.
	assert.Contains(t, out, "Hotspots:")
	assert.Contains(t, out, "  Classify -> Execute: 3")
	assert.NotContains(t, out, "Parse -> Classify: 1")
}

func TestASCII_MinimumColumnWidth(t *testing.T) {
	sum := domain.Summary{
		States:           []string{"A", "B"},
		Matrix:           map[string]map[string]int{"A": {"B": 1}},
		Hotspots:         []domain.Hotspot{{From: "A", To: "B", Count: 1}},
		TotalTransitions: 1,
		TotalFailures:    1,
		FailureRate:      1,
	}
	out := render.ASCII(sum)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	// Short labels still get the 4-wide minimum column.
	header := lines[3]
	separator := lines[4]
	assert.Equal(t, len([]rune(header)), len([]rune(separator)))
	assert.GreaterOrEqual(t, len([]rune(header)), 4+3+2*(4+1)-1)
}

func TestASCII_HotspotCap(t *testing.T) {
	sum := domain.Summary{
		States:           []string{"Z"},
		Matrix:           map[string]map[string]int{},
		TotalTransitions: 20,
		TotalFailures:    20,
		FailureRate:      1,
	}
	for i := 0; i < 8; i++ {
		from := string(rune('A' + i))
		sum.Hotspots = append(sum.Hotspots, domain.Hotspot{From: from, To: "Z", Count: 2})
	}
	out := render.ASCII(sum)
	assert.Equal(t, 5, strings.Count(out, "-> Z:"))
}
