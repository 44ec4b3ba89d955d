// Package http serves the live transition failure report over HTTP.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mberan/tfm/internal/presentation/graph"
	"github.com/mberan/tfm/internal/presentation/render"
	"github.com/mberan/tfm/pkg/domain"
)

// ReportSource defines the tracker operations the report server reads.
type ReportSource interface {
	Summary() domain.Summary
	TransitionRates() domain.Rates
}

// NewHandler creates an HTTP handler exposing the matrix in every
// supported rendering, plus Prometheus metrics and a health probe.
func NewHandler(source ReportSource) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/report", func(w http.ResponseWriter, req *http.Request) {
		out, err := render.JSON(source.Summary(), 1)
		if err != nil {
			http.Error(w, "Failed to render report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(out))
	})

	r.Get("/report.md", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(render.Markdown(source.Summary())))
	})

	r.Get("/report.txt", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(render.ASCII(source.Summary())))
	})

	r.Get("/graph", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(graph.Sankey(source.TransitionRates(), true, 1)))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
