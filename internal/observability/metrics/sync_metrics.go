// Package metrics exposes prometheus instruments for the sync engine.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Item outcomes recorded per reconciled item.
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeRemoved = "removed"
	OutcomeFailed  = "failed"
)

// SyncMetrics captures reconciliation health signals.
type SyncMetrics struct {
	runs        prometheus.Counter
	runDuration prometheus.Observer
	items       *prometheus.CounterVec
	feedEvents  *prometheus.CounterVec
}

var (
	syncMetricsOnce sync.Once
	syncMetrics     *SyncMetrics
)

// Sync returns the singleton sync metrics registry.
func Sync() *SyncMetrics {
	syncMetricsOnce.Do(func() {
		syncMetrics = newSyncMetrics(prometheus.DefaultRegisterer)
	})
	return syncMetrics
}

// ResetSyncMetricsForTest resets the singleton for tests.
func ResetSyncMetricsForTest() {
	syncMetricsOnce = sync.Once{}
	syncMetrics = nil
}

func newSyncMetrics(registerer prometheus.Registerer) *SyncMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gestao_sync_runs_total",
		Help: "Full reconciliation passes started.",
	})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gestao_sync_run_duration_seconds",
		Help:    "Full reconciliation pass latency.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gestao_sync_items_total",
		Help: "Reconciled items by outcome; skip rate audits duplicate detection.",
	}, []string{"outcome"})
	feedEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gestao_sync_feed_events_total",
		Help: "Realtime change-feed events by outcome.",
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{runs, runDuration, items, feedEvents} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}

	return &SyncMetrics{
		runs:        runs,
		runDuration: runDuration,
		items:       items,
		feedEvents:  feedEvents,
	}
}

func (m *SyncMetrics) IncRun() {
	if m == nil {
		return
	}
	m.runs.Inc()
}

func (m *SyncMetrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
}

func (m *SyncMetrics) IncItem(outcome string) {
	if m == nil {
		return
	}
	m.items.WithLabelValues(outcome).Inc()
}

func (m *SyncMetrics) IncFeedEvent(outcome string) {
	if m == nil {
		return
	}
	m.feedEvents.WithLabelValues(outcome).Inc()
}
