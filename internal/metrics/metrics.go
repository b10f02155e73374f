// Package metrics exposes Prometheus instrumentation for the interview API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "acey"

var (
	// SessionsStarted counts bootstrapped interview sessions by mode.
	SessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of interview sessions bootstrapped",
		},
		[]string{"mode"},
	)

	// FramesAnalyzed counts camera frame submissions by outcome.
	FramesAnalyzed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_analyzed_total",
			Help:      "Total number of camera frames submitted for analysis",
		},
		[]string{"status"}, // status: success, rate_limited, error
	)

	// ReviewsGenerated counts review synthesis attempts by outcome.
	ReviewsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_generated_total",
			Help:      "Total number of interview reviews generated",
		},
		[]string{"status"}, // status: success, fallback, error
	)

	// ProviderRequestDuration observes LLM provider call latency.
	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of LLM provider API calls in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation", "status"}, // operation: text, vision
	)
)

var allMetrics = []prometheus.Collector{
	SessionsStarted,
	FramesAnalyzed,
	ReviewsGenerated,
	ProviderRequestDuration,
}

// Handler returns an http.Handler serving the metrics registry, including
// Go runtime collectors.
func Handler() http.Handler {
	reg := prometheus.NewRegistry()
	for _, collector := range allMetrics {
		reg.MustRegister(collector)
	}
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
