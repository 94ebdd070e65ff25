package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation pipeline end to end
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendation pipeline",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// How often the LLM extractor failed and the rule-based parser took over
	IntentFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intent_fallback_total",
		Help: "Times intent extraction fell back to the rule-based parser",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendTotal,
		IntentFallbackTotal,
	)
}
