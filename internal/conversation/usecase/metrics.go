package usecase

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "taskcal"

// Metrics are the conversation collectors. A nil Registerer leaves them unregistered.
type Metrics struct {
	started  prometheus.Counter
	finished *prometheus.CounterVec
	calls    *prometheus.HistogramVec
	active   prometheus.GaugeFunc
}

func NewMetrics(reg prometheus.Registerer, activeSessions func() float64) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		started: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "conversation",
			Name:      "started_total",
			Help:      "Task conversations opened.",
		}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "conversation",
			Name:      "finished_total",
			Help:      "Task conversations closed, by outcome.",
		}, []string{"outcome"}),
		calls: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "conversation",
			Name:      "external_call_duration_seconds",
			Help:      "Latency of timezone, credential and calendar calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"effect", "result"}),
	}
	if activeSessions != nil {
		m.active = f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "conversation",
			Name:      "active_sessions",
			Help:      "Conversations currently held in memory.",
		}, activeSessions)
	}
	return m
}

func (m *Metrics) start() {
	if m == nil {
		return
	}
	m.started.Inc()
}

func (m *Metrics) finish(outcome string) {
	if m == nil {
		return
	}
	m.finished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observe(effect string, began time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.calls.WithLabelValues(effect, result).Observe(time.Since(began).Seconds())
}
