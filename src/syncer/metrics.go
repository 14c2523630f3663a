package syncer

import (
	"banksync-server/src/models"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the sync pipeline's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs            *prometheus.CounterVec
	imported        prometheus.Counter
	importFailures  prometheus.Counter
	outcomes        *prometheus.CounterVec
	cascadeFailures prometheus.Counter
	runDuration     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banksync_runs_total",
				Help: "Total number of sync runs by status",
			},
			[]string{"status"},
		),
		imported: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "banksync_transactions_imported_total",
				Help: "Total number of bank transactions created by sync runs",
			},
		),
		importFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "banksync_transaction_import_failures_total",
				Help: "Total number of remote transactions that could not be stored",
			},
		),
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banksync_account_outcomes_total",
				Help: "Total number of per-account sync outcomes",
			},
			[]string{"outcome"},
		),
		cascadeFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "banksync_cascade_failures_total",
				Help: "Total number of auto-match triggers that could not be delivered",
			},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "banksync_run_duration_seconds",
				Help:    "Duration of sync runs",
				Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30, 60, 120},
			},
		),
	}
}

func (m *Metrics) runFinished(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.Observe(d.Seconds())
}

func (m *Metrics) recordSummary(s models.RunSummary) {
	if m == nil {
		return
	}
	m.imported.Add(float64(s.TotalNewTransactions))
	for _, o := range s.Outcomes {
		m.outcomes.WithLabelValues(string(o.Kind)).Inc()
	}
}

func (m *Metrics) importFailed() {
	if m == nil {
		return
	}
	m.importFailures.Inc()
}

// CascadeFailed counts an undelivered auto-match trigger. It is exported so the
// cascade queue's error hook can report into the same registry.
func (m *Metrics) CascadeFailed() {
	if m == nil {
		return
	}
	m.cascadeFailures.Inc()
}
