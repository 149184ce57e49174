// Package metrics provides the Prometheus-backed collector for
// ledger activity, exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements ledger.MetricsCollector on Prometheus counters.
type Collector struct {
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	errors       *prometheus.CounterVec
}

func NewCollector() *Collector {
	return &Collector{
		transactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trivest_transactions_total",
			Help: "Ledger transactions recorded, by type.",
		}, []string{"type"}),
		volume: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trivest_transaction_volume",
			Help: "Total transaction volume in major currency units, by type.",
		}, []string{"type"}),
		errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trivest_operation_errors_total",
			Help: "Failed operations, by operation and error type.",
		}, []string{"operation", "error"}),
	}
}

func (c *Collector) RecordTransaction(txType string, amount float64) {
	c.transactions.WithLabelValues(txType).Inc()
	c.volume.WithLabelValues(txType).Add(amount)
}

func (c *Collector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}
