// Package metrics exposes Prometheus counters and histograms for the
// parser and generator's operational behavior: parse errors by taxonomy,
// generator rebuild attempts, and solver solve latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ParseErrors counts DefinitionLoad failures by the taxonomy of error
	// underlying them (grammatical, name-collision, unknown-referent,
	// morphology, contradiction).
	ParseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imaginarium_parse_errors_total",
		Help: "Total definitions-file parse errors by taxonomy",
	}, []string{"taxonomy"})

	// GeneratorRebuildAttempts counts Generate's internal retries (each
	// Problem.Solve retry the generator requests counts as one attempt).
	GeneratorRebuildAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imaginarium_generator_rebuild_attempts_total",
		Help: "Total number of constraint-solve attempts made across all Generate calls",
	})

	// SolveLatency observes the wall-clock time of one Problem.Solve call.
	SolveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "imaginarium_solve_duration_seconds",
		Help:    "Histogram of Problem.Solve latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// Inventions counts successful Generate calls by root kind name.
	Inventions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imaginarium_inventions_total",
		Help: "Total number of inventions generated, by root kind",
	}, []string{"kind"})
)

// ObserveSolve records one solve attempt's latency.
func ObserveSolve(d time.Duration) {
	SolveLatency.Observe(d.Seconds())
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve starts a dedicated HTTP server exposing /metrics on addr. It blocks
// until the server stops; callers typically run it in its own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
