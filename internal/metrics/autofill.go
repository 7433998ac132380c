package metrics

import "github.com/prometheus/client_golang/prometheus"

// Autofill Prometheus metrics.
var (
	AutofillRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "autofill_requests_total",
			Help:      "Total number of autofill requests sent to the LLM provider",
		},
		[]string{"provider", "model", "status"},
	)

	AutofillRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "autofill_request_duration_seconds",
			Help:      "Autofill provider request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "model"},
	)

	AutofillTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "autofill_tokens_total",
			Help:      "Total LLM tokens consumed by autofill",
		},
		[]string{"provider", "model", "type"},
	)

	AutofillErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "autofill_errors_total",
			Help:      "Total autofill errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	AutofillBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "autofill_budget_tokens_remaining",
			Help:      "Remaining autofill token budget (-1 when unlimited)",
		},
		[]string{"provider", "period"},
	)

	AutofillCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "autofill_cache_total",
			Help:      "Autofill cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var autofillMetricsRegistered bool

// RegisterAutofillMetrics registers Prometheus autofill metrics. Must be called once from main.
func RegisterAutofillMetrics() {
	if autofillMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		AutofillRequestsTotal,
		AutofillRequestDuration,
		AutofillTokensTotal,
		AutofillErrorsTotal,
		AutofillBudgetTokensRemaining,
		AutofillCacheTotal,
	)
	autofillMetricsRegistered = true
}
