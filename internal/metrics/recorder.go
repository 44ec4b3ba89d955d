// Package metrics exports transition outcomes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mberan/tfm/pkg/domain"
)

// Recorder converts tracker events into Prometheus metrics. Register it
// on a tracker with tfm.WithObserver(recorder.Observe).
type Recorder struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder creates a Recorder and registers its collectors on reg.
// Pass prometheus.DefaultRegisterer outside of tests.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfm_transitions_total",
				Help: "Total number of recorded state transitions",
			},
			[]string{"from", "to", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "tfm_transition_duration_seconds",
				Help: "Duration of tracked transitions",
			},
			[]string{"from", "to"},
		),
	}
	reg.MustRegister(r.transitions, r.duration)
	return r
}

// Observe records one transition event.
func (r *Recorder) Observe(ev domain.TransitionEvent) {
	result := "success"
	if !ev.Success {
		result = "failure"
	}
	r.transitions.WithLabelValues(ev.From, ev.To, result).Inc()
	r.duration.WithLabelValues(ev.From, ev.To).Observe(ev.DurationMS / 1000)
}
