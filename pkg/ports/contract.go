package ports

import (
	"context"
	"testing"
	"time"

	"github.com/mberan/tfm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBaselineStoreContract runs a suite of tests to verify that a
// BaselineStore implementation adheres to the defined interface contract.
func RunBaselineStoreContract(t *testing.T, store BaselineStore) {
	ctx := context.Background()
	name := "contract-test-baseline-" + time.Now().Format("20060102150405")

	rates := domain.Rates{
		"START" + domain.PairSeparator + "Parse": {
			Total:         20,
			Successes:     18,
			Failures:      2,
			FailureRate:   10.0,
			AvgDurationMS: 5.5,
		},
		"Parse" + domain.PairSeparator + "Execute": {
			Total:         18,
			Successes:     12,
			Failures:      6,
			FailureRate:   33.33333333333333,
			AvgDurationMS: 42.0,
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, name, rates)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, len(rates))
		for pair, stats := range rates {
			got, ok := loaded[pair]
			require.True(t, ok, "pair %q should survive the round trip", pair)
			assert.Equal(t, stats.Total, got.Total)
			assert.Equal(t, stats.Failures, got.Failures)
			assert.InDelta(t, stats.FailureRate, got.FailureRate, 1e-9)
			assert.InDelta(t, stats.AvgDurationMS, got.AvgDurationMS, 1e-9)
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrBaselineNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, name, rates)
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrBaselineNotFound, "Load after Delete should return ErrBaselineNotFound")
	})

	t.Run("Delete Non-Existent Is Idempotent", func(t *testing.T) {
		err := store.Delete(ctx, "non-existent-"+name)
		assert.NoError(t, err)
	})
}
