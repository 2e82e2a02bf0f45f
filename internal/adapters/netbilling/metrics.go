package netbilling

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netbilling_transactions_total",
			Help: "Total number of direct mode calls by transaction type and outcome",
		},
		[]string{"tran_type", "outcome"},
	)

	transactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netbilling_transaction_duration_seconds",
			Help:    "Gateway round-trip duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tran_type"},
	)

	transportErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netbilling_transport_errors_total",
			Help: "Transport-level failures reaching the gateway",
		},
		[]string{"tran_type"},
	)
)

func observeCall(tranType, outcome string, elapsed time.Duration) {
	transactionsTotal.WithLabelValues(tranType, outcome).Inc()
	transactionDuration.WithLabelValues(tranType).Observe(elapsed.Seconds())
}

func observeTransportError(tranType string) {
	transportErrorsTotal.WithLabelValues(tranType).Inc()
}
