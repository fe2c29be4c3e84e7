// Package metrics exposes Prometheus collectors for emitter sessions.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EmitterMetrics tracks emission statistics across all emitter sessions that
// share it. All record methods are safe to call on a nil receiver so the
// emitter can treat metrics as optional.
type EmitterMetrics struct {
	mu sync.RWMutex

	// Mirror counts kept for Snapshot so introspection does not require
	// scraping Prometheus.
	emitted  uint64
	buffered uint64
	dropped  uint64

	emittedTotal   *prometheus.CounterVec
	droppedTotal   prometheus.Counter
	bufferHigh     prometheus.Gauge
	flushBatchSize prometheus.Histogram
	flushSeconds   prometheus.Histogram

	registerer prometheus.Registerer
	registered bool
}

// Snapshot is a point-in-time view of emitter metrics.
type Snapshot struct {
	EmittedTotal  uint64    `json:"emitted_total"`
	BufferedTotal uint64    `json:"buffered_total"`
	DroppedTotal  uint64    `json:"dropped_total"`
	CollectedAt   time.Time `json:"collected_at"`
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "streamlatch",
			Subsystem: "emitter",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// NewEmitterMetrics creates a metrics collector. A nil registerer falls back
// to the default Prometheus registerer.
func NewEmitterMetrics(registerer prometheus.Registerer) *EmitterMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &EmitterMetrics{
		registerer:   registerer,
		emittedTotal: newCounterVec("events_total", "Total number of events emitted, by kind and delivery path", []string{"kind", "path"}),
		droppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamlatch",
			Subsystem: "emitter",
			Name:      "dropped_events_total",
			Help:      "Total number of events emitted after the stream's logical termination",
		}),
		bufferHigh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streamlatch",
			Subsystem: "emitter",
			Name:      "buffer_high_water",
			Help:      "Largest number of actions held in any pending-action buffer",
		}),
		flushBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streamlatch",
			Subsystem: "emitter",
			Name:      "flush_batch_size",
			Help:      "Number of buffered actions replayed per bind",
			Buckets:   []float64{0, 1, 2, 5, 10, 50, 100, 1000},
		}),
		flushSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streamlatch",
			Subsystem: "emitter",
			Name:      "flush_duration_seconds",
			Help:      "Time spent replaying buffered actions during bind",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *EmitterMetrics) Register() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		m.emittedTotal,
		m.droppedTotal,
		m.bufferHigh,
		m.flushBatchSize,
		m.flushSeconds,
	}

	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

// RecordEmit records one emitted event. path distinguishes actions appended
// to the pending buffer from actions forwarded directly to a bound sink.
func (m *EmitterMetrics) RecordEmit(kind string, bufferedPath bool) {
	if m == nil {
		return
	}

	path := "direct"
	if bufferedPath {
		path = "buffered"
	}
	m.emittedTotal.WithLabelValues(kind, path).Inc()

	m.mu.Lock()
	m.emitted++
	if bufferedPath {
		m.buffered++
	}
	m.mu.Unlock()
}

// RecordDrop records an event emitted after the stream's logical termination.
func (m *EmitterMetrics) RecordDrop() {
	if m == nil {
		return
	}

	m.droppedTotal.Inc()

	m.mu.Lock()
	m.dropped++
	m.mu.Unlock()
}

// RecordBufferLen updates the buffer high-water gauge.
func (m *EmitterMetrics) RecordBufferLen(n int) {
	if m == nil {
		return
	}
	m.bufferHigh.Set(float64(n))
}

// RecordFlush records one bind-time replay of n buffered actions.
func (m *EmitterMetrics) RecordFlush(n int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.flushBatchSize.Observe(float64(n))
	m.flushSeconds.Observe(elapsed.Seconds())
}

// GetSnapshot returns a point-in-time view of the mirror counters.
func (m *EmitterMetrics) GetSnapshot() Snapshot {
	if m == nil {
		return Snapshot{CollectedAt: time.Now()}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		EmittedTotal:  m.emitted,
		BufferedTotal: m.buffered,
		DroppedTotal:  m.dropped,
		CollectedAt:   time.Now(),
	}
}
