package render

import (
	"encoding/json"
	"fmt"

	"github.com/mberan/tfm/pkg/domain"
)

// JSON renders the summary as indented JSON. The hotspots array is
// filtered to entries with at least minFailures failures; the matrix
// carries the ledger's failure counts exactly.
func JSON(sum domain.Summary, minFailures int) (string, error) {
	out := sum
	out.Hotspots = filterHotspots(sum.Hotspots, minFailures, len(sum.Hotspots))
	if out.States == nil {
		out.States = []string{}
	}
	if out.Matrix == nil {
		out.Matrix = map[string]map[string]int{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return string(data), nil
}
