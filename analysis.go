package tfm

import (
	"math"
	"sort"

	"github.com/mberan/tfm/pkg/domain"
)

// rateEpsilon floors the baseline rate in relative comparisons so a zero
// baseline does not divide by zero.
const rateEpsilon = 1e-4

// ClusterErrors groups failed events by their exact error message.
// Events without a message are excluded; encounter order is preserved
// within each cluster.
func ClusterErrors(events []domain.TransitionEvent) map[string][]domain.TransitionEvent {
	clusters := make(map[string][]domain.TransitionEvent)
	for _, ev := range events {
		if ev.Error == "" {
			continue
		}
		clusters[ev.Error] = append(clusters[ev.Error], ev)
	}
	return clusters
}

// CompareToBaseline reports the pairs whose failure rate regressed
// versus the baseline. A pair regresses when its rate increased and the
// relative increase exceeds threshold (a fraction; 0.2 means 20%).
// Pairs present on only one side carry no regression signal and are
// skipped. Results are sorted by rate delta descending.
func CompareToBaseline(current, baseline domain.Rates, threshold float64) []domain.Regression {
	pairs := make([]string, 0, len(current))
	for pair := range current {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	regressions := make([]domain.Regression, 0)
	for _, pair := range pairs {
		base, ok := baseline[pair]
		if !ok {
			continue
		}
		cur := current[pair]
		delta := cur.FailureRate - base.FailureRate
		if delta <= 0 {
			continue
		}
		relative := delta / math.Max(base.FailureRate, rateEpsilon)
		if relative <= threshold {
			continue
		}
		regressions = append(regressions, domain.Regression{
			Transition:      pair,
			BaselineRate:    base.FailureRate,
			CurrentRate:     cur.FailureRate,
			Delta:           delta,
			PercentIncrease: relative * 100,
		})
	}
	sort.SliceStable(regressions, func(i, j int) bool {
		return regressions[i].Delta > regressions[j].Delta
	})
	return regressions
}
