package ports

import (
	"context"

	"github.com/mberan/tfm/pkg/domain"
)

// BaselineStore defines the interface for persisting transition-rate
// baselines. A baseline is a named snapshot of rates captured from a
// known-good run, used later for regression comparison.
type BaselineStore interface {
	// Save persists the rates under the given baseline name.
	Save(ctx context.Context, name string, rates domain.Rates) error

	// Load retrieves the rates for a given baseline name.
	// Returns domain.ErrBaselineNotFound if the baseline does not exist.
	Load(ctx context.Context, name string) (domain.Rates, error)

	// Delete removes the baseline with the given name.
	Delete(ctx context.Context, name string) error
}
