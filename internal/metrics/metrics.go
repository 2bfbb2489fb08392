package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline collectors. A nil *Metrics records nothing.
type Metrics struct {
	gatherer      prometheus.Gatherer
	jobs          *prometheus.CounterVec
	jobDuration   prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	notifications *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		jobs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meeting_jobs_total",
			Help: "Finished meeting jobs by outcome.",
		}, []string{"outcome"}),
		jobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "meeting_job_duration_seconds",
			Help:    "Wall time of one pipeline run.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meeting_stage_duration_seconds",
			Help:    "Wall time spent in each pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.05, 3, 9),
		}, []string{"stage"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meeting_notifications_total",
			Help: "Push notifications by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) JobFinished(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(outcome).Inc()
	m.jobDuration.Observe(d.Seconds())
}

func (m *Metrics) StageFinished(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) Notification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
