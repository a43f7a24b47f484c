package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_operations_total",
			Help: "Total service operations per collection",
		},
		[]string{"collection", "operation"},
	)

	cascadesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_cascade_deletes_total",
			Help: "Total cascade delete passes per originating collection",
		},
		[]string{"collection"},
	)

	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_events_cache_hits_total",
			Help: "Ranged event queries served from the cache",
		},
	)

	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_events_cache_misses_total",
			Help: "Ranged event queries that fell through to the store",
		},
	)

	recordCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scheduler_records_total",
			Help: "Current number of records per collection",
		},
		[]string{"collection"},
	)
)

// Track service operations
func TrackOperation(collection, operation string) {
	operationsTotal.WithLabelValues(collection, operation).Inc()
}

// Track cascade delete passes
func TrackCascade(collection string) {
	cascadesTotal.WithLabelValues(collection).Inc()
}

func TrackCacheHit()  { cacheHits.Inc() }
func TrackCacheMiss() { cacheMisses.Inc() }

// Monitor periodically samples record counts from the store.
type Monitor struct {
	app         core.App
	collections []string
}

func NewMonitor(app core.App, collections ...string) *Monitor {
	return &Monitor{app: app, collections: collections}
}

func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectRecordCounts()
		}
	}
}

func (m *Monitor) collectRecordCounts() {
	for _, name := range m.collections {
		total, err := m.app.CountRecords(name)
		if err != nil {
			slog.Warn("monitoring: count failed", "collection", name, "error", err)
			continue
		}
		recordCount.WithLabelValues(name).Set(float64(total))
	}
}
