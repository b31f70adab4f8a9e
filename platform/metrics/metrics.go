// Package metrics provides Prometheus collectors for the engagement pipeline.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores Prometheus collectors used across the service.
// All recording methods are safe to call on a nil receiver.
type Metrics struct {
	JudgeRequests      *prometheus.CounterVec
	JudgeLatency       *prometheus.HistogramVec
	LeadsScored        *prometheus.CounterVec
	ContentGenerated   *prometheus.CounterVec
	Dispatches         *prometheus.CounterVec
	VoiceCalls         *prometheus.CounterVec
	AuditWriteFailures *prometheus.CounterVec

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

// PoolStat is a snapshot of the database connection pool.
type PoolStat struct {
	Total    int32
	Idle     int32
	Acquired int32
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the process-wide metrics singleton.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = New(namespace, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	})
	return metricsInstance
}

// New builds collectors and registers them on reg.
func New(namespace string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		JudgeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "judge_requests_total",
			Help:      "Total AI judge requests by purpose and outcome.",
		}, []string{"purpose", "status"}),
		JudgeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "judge_request_duration_seconds",
			Help:      "Latency distribution for AI judge calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"purpose"}),
		LeadsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_scored_total",
			Help:      "Total leads scored by category.",
		}, []string{"category"}),
		ContentGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_generated_total",
			Help:      "Generated content items by platform and compliance status.",
		}, []string{"platform", "compliance_status"}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Outbound message dispatches by channel and provider status.",
		}, []string{"channel", "status"}),
		VoiceCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_calls_total",
			Help:      "Voice call lifecycle transitions by status.",
		}, []string{"status"}),
		AuditWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_write_failures_total",
			Help:      "Best-effort audit writes that failed.",
		}, []string{"kind"}),
		registerer: reg,
		gatherer:   gatherer,
	}

	reg.MustRegister(
		m.JudgeRequests,
		m.JudgeLatency,
		m.LeadsScored,
		m.ContentGenerated,
		m.Dispatches,
		m.VoiceCalls,
		m.AuditWriteFailures,
	)
	return m
}

// Handler exposes the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveJudge(purpose, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.JudgeRequests.WithLabelValues(purpose, status).Inc()
	m.JudgeLatency.WithLabelValues(purpose).Observe(elapsed.Seconds())
}

func (m *Metrics) LeadScored(category string) {
	if m == nil {
		return
	}
	m.LeadsScored.WithLabelValues(category).Inc()
}

func (m *Metrics) ContentItem(platform, complianceStatus string) {
	if m == nil {
		return
	}
	m.ContentGenerated.WithLabelValues(platform, complianceStatus).Inc()
}

func (m *Metrics) Dispatch(channel, status string) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) VoiceCall(status string) {
	if m == nil {
		return
	}
	m.VoiceCalls.WithLabelValues(status).Inc()
}

func (m *Metrics) AuditWriteFailed(kind string) {
	if m == nil {
		return
	}
	m.AuditWriteFailures.WithLabelValues(kind).Inc()
}

// ObservePool exports pool gauges that call stat on every scrape.
func (m *Metrics) ObservePool(namespace string, stat func() PoolStat) {
	if m == nil || stat == nil {
		return
	}
	gauge := func(name, help string, pick func(PoolStat) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(pick(stat())) })
	}
	m.registerer.MustRegister(
		gauge("connections", "Open connections in the pool.", func(s PoolStat) int32 { return s.Total }),
		gauge("idle_connections", "Idle connections in the pool.", func(s PoolStat) int32 { return s.Idle }),
		gauge("acquired_connections", "Connections currently checked out.", func(s PoolStat) int32 { return s.Acquired }),
	)
}
