package metrics

import "github.com/prometheus/client_golang/prometheus"

// Translation pipeline Prometheus metrics.
var (
	TranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "healthsearch",
			Name:      "translations_total",
			Help:      "Total query translations by outcome",
		},
		[]string{"outcome"}, // fresh / cache / degraded / easteregg / error
	)

	GenerationAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "healthsearch",
			Name:      "generation_attempts_total",
			Help:      "Total LLM query generation attempts, including retries",
		},
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "healthsearch",
			Name:      "cache_lookups_total",
			Help:      "Semantic cache lookups by result",
		},
		[]string{"result"}, // exact / similar / miss
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "healthsearch",
			Name:      "llm_requests_total",
			Help:      "Total LLM completion requests",
		},
		[]string{"model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "healthsearch",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)
)

var translationMetricsRegistered bool

// RegisterTranslationMetrics registers translation pipeline metrics.
// Must be called once from main.
func RegisterTranslationMetrics() {
	if translationMetricsRegistered {
		return
	}
	prometheus.MustRegister(TranslationsTotal)
	prometheus.MustRegister(GenerationAttemptsTotal)
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	translationMetricsRegistered = true
}
