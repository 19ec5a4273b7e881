// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus-backed metrics for the worker pool.

package control

import (
	"errors"
	"fmt"
	"time"

	"github.com/momentics/concur/internal/concurrency"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
)

// MetricsRegistry owns a Prometheus registry with Go runtime collectors.
type MetricsRegistry struct {
	registry *prometheus.Registry
}

// NewMetricsRegistry creates a registry with Go and process collectors.
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &MetricsRegistry{registry: reg}
}

// PrometheusRegistry returns the underlying registry, e.g. for promhttp.
func (mr *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return mr.registry
}

// Register adds c, reporting duplicate registrations as errors.
func (mr *MetricsRegistry) Register(c prometheus.Collector) error {
	if err := mr.registry.Register(c); err != nil {
		var dup prometheus.AlreadyRegisteredError
		if errors.As(err, &dup) {
			return fmt.Errorf("metric already registered: %w", err)
		}
		return err
	}
	return nil
}

// GetSnapshot returns the current value of every unlabelled counter and
// gauge, and the sample count of every histogram, keyed by metric name.
func (mr *MetricsRegistry) GetSnapshot() (map[string]any, error) {
	families, err := mr.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(families))
	for _, mf := range families {
		if len(mf.GetMetric()) != 1 || len(mf.GetMetric()[0].GetLabel()) != 0 {
			continue
		}
		m := mf.GetMetric()[0]
		switch mf.GetType() {
		case dto.MetricType_COUNTER:
			out[mf.GetName()] = m.GetCounter().GetValue()
		case dto.MetricType_GAUGE:
			out[mf.GetName()] = m.GetGauge().GetValue()
		case dto.MetricType_HISTOGRAM:
			out[mf.GetName()] = m.GetHistogram().GetSampleCount()
		}
	}
	return out, nil
}

// PoolMetrics turns pool events into Prometheus series. It implements
// concurrency.Observer.
type PoolMetrics struct {
	registry    *MetricsRegistry
	namespace   string
	submitted   prometheus.Counter
	completed   prometheus.Counter
	failed      prometheus.Counter
	cleared     prometheus.Counter
	pinFailures prometheus.Counter
	duration    prometheus.Histogram
}

var _ concurrency.Observer = (*PoolMetrics)(nil)

// NewPoolMetrics creates and registers the pool's counters and histogram
// under namespace.
func NewPoolMetrics(reg *MetricsRegistry, namespace string) (*PoolMetrics, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      name,
			Help:      help,
		})
	}
	m := &PoolMetrics{
		registry:    reg,
		namespace:   namespace,
		submitted:   counter("tasks_submitted_total", "Tasks accepted by Submit."),
		completed:   counter("tasks_completed_total", "Tasks dispatched and finished, failed or not."),
		failed:      counter("tasks_failed_total", "Tasks that panicked or exited their worker."),
		cleared:     counter("tasks_cleared_total", "Queued tasks dropped by Clear."),
		pinFailures: counter("worker_pin_failures_total", "Workers whose CPU pinning failed."),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "task_duration_seconds",
			Help:      "Wall time of dispatched tasks.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.submitted, m.completed, m.failed, m.cleared, m.pinFailures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Sizer reports pool dimensions for gauge collection.
type Sizer interface {
	Size() int
	QueueSize() int
}

// Attach registers gauges reading the live queue depth and worker count of p.
func (m *PoolMetrics) Attach(p Sizer) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: "pool",
			Name:      "queue_depth",
			Help:      "Tasks queued and not yet dispatched.",
		}, func() float64 { return float64(p.QueueSize()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: "pool",
			Name:      "workers",
			Help:      "Fixed number of pool workers.",
		}, func() float64 { return float64(p.Size()) }),
	}
	for _, g := range gauges {
		if err := m.registry.Register(g); err != nil {
			return err
		}
	}
	return nil
}

func (m *PoolMetrics) TaskSubmitted() { m.submitted.Inc() }

func (m *PoolMetrics) TaskFinished(d time.Duration, failed bool) {
	m.completed.Inc()
	if failed {
		m.failed.Inc()
	}
	m.duration.Observe(d.Seconds())
}

func (m *PoolMetrics) QueueCleared(n int) { m.cleared.Add(float64(n)) }

func (m *PoolMetrics) WorkerPinned(_ int, _ uint, err error) {
	if err != nil {
		m.pinFailures.Inc()
	}
}
