package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ClientMetrics tracks the upload/poll activity of one client session.
type ClientMetrics struct {
	registry *prometheus.Registry

	uploadsTotal     *prometheus.CounterVec
	uploadDuration   *prometheus.HistogramVec
	statusPollTotal  *prometheus.CounterVec
	pollCycleSeconds prometheus.Histogram
	jobsTotal        *prometheus.CounterVec
}

func NewClientMetrics(service string) *ClientMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "plaud",
			Subsystem:   "client",
			Name:        "uploads_total",
			Help:        "Total upload attempts by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"outcome"},
	)
	uploadDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "plaud",
			Subsystem:   "client",
			Name:        "upload_duration_seconds",
			Help:        "Upload duration in seconds by outcome.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
		[]string{"outcome"},
	)
	statusPollTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "plaud",
			Subsystem:   "client",
			Name:        "status_polls_total",
			Help:        "Total status polls by raw server status.",
			ConstLabels: constLabels,
		},
		[]string{"raw_status"},
	)
	pollCycleSeconds := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "plaud",
			Subsystem:   "client",
			Name:        "poll_cycle_duration_seconds",
			Help:        "Duration of one status poll round trip in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
	)
	jobsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "plaud",
			Subsystem:   "client",
			Name:        "jobs_total",
			Help:        "Jobs reaching a terminal poller state.",
			ConstLabels: constLabels,
		},
		[]string{"state"},
	)

	registry.MustRegister(uploadsTotal, uploadDuration, statusPollTotal, pollCycleSeconds, jobsTotal)

	return &ClientMetrics{
		registry:         registry,
		uploadsTotal:     uploadsTotal,
		uploadDuration:   uploadDuration,
		statusPollTotal:  statusPollTotal,
		pollCycleSeconds: pollCycleSeconds,
		jobsTotal:        jobsTotal,
	}
}

func (m *ClientMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ClientMetrics) ObserveUpload(duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.uploadsTotal.WithLabelValues(outcome).Inc()
	m.uploadDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *ClientMetrics) IncStatusPoll(rawStatus string) {
	m.statusPollTotal.WithLabelValues(rawStatus).Inc()
}

func (m *ClientMetrics) ObservePollCycle(duration time.Duration) {
	m.pollCycleSeconds.Observe(duration.Seconds())
}

func (m *ClientMetrics) IncTerminal(state string) {
	m.jobsTotal.WithLabelValues(state).Inc()
}
