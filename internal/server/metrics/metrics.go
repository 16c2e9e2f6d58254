// Package metrics declares the Prometheus collectors of the server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "transkeeper"

var (
	// gRPC volume by method and status code
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of gRPC requests handled.",
	}, []string{"method", "code"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_requests",
		Help:      "Current number of in-flight gRPC requests.",
	})

	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Handler duration of gRPC requests.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method"})

	// result is ok, error or timeout
	TranslationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translations_total",
		Help:      "Translate actions by result.",
	}, []string{"result"})

	// collaborator is translator, tts or stt
	CollaboratorDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "collaborator_duration_seconds",
		Help:      "Duration of calls to external translation and speech engines.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"collaborator"})

	CollaboratorFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collaborator_failures_total",
		Help:      "Failed calls to external translation and speech engines.",
	}, []string{"collaborator"})

	HistoryWriteDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "history_write_duration_seconds",
		Help:      "Duration of history appends including retention pruning.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5},
	})

	// kind names the degraded step: history, reverse, tts or stt
	WarningsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "warnings_total",
		Help:      "Degraded actions that returned a warning instead of failing.",
	}, []string{"kind"})

	RateLimitDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_dropped_total",
		Help:      "Signup and login attempts rejected by the per-user rate limiter.",
	})
)

// Collaborator labels.
const (
	Translator = "translator"
	TTS        = "tts"
	STT        = "stt"
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestsTotal,
		ActiveRequests,
		RequestDurationSeconds,
		TranslationsTotal,
		CollaboratorDurationSeconds,
		CollaboratorFailuresTotal,
		HistoryWriteDurationSeconds,
		WarningsTotal,
		RateLimitDroppedTotal,
	)
}
