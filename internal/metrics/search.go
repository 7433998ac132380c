package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of ranked searches by outcome",
		},
		[]string{"outcome"}, // "hit" / "empty"
	)

	SearchIntentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_intent_total",
			Help:      "Searches whose query carried intent, by category",
		},
		[]string{"category"},
	)

	SearchMatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_top_match_total",
			Help:      "Match type of the top-ranked result",
		},
		[]string{"match_type"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Ranked search duration in seconds, catalog load included",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchCatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "search_catalog_items",
			Help:      "Number of catalog items scanned by the last search",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		SearchRequestsTotal,
		SearchIntentTotal,
		SearchMatchTotal,
		SearchDuration,
		SearchCatalogSize,
	)
	searchMetricsRegistered = true
}
