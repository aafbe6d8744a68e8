package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace     = "cofoundr"
	cronSubsystem = "cron"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Snapshot and expiry sweeps run for seconds to minutes, so buckets start at
// 50ms and reach roughly 10 minutes.
var cronJobBuckets = prometheus.ExponentialBuckets(0.05, 2.5, 10)

// CronJobMetrics records duration, outcome and last success for cron jobs.
type CronJobMetrics struct {
	duration    *prometheus.HistogramVec
	runs        *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
}

// NewCronJobMetrics registers cofoundr_cron_* on reg. Series for the given
// job names start at zero so a job that never ran is still visible.
func NewCronJobMetrics(reg prometheus.Registerer, jobs ...string) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: cronSubsystem,
		Name:      "job_duration_seconds",
		Help:      "Duration of cron job runs in seconds.",
		Buckets:   cronJobBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: cronSubsystem,
		Name:      "job_runs_total",
		Help:      "Cron job runs by outcome.",
	}, []string{"job", "outcome"})
	lastSuccess := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: cronSubsystem,
		Name:      "job_last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run per job.",
	}, []string{"job"})
	reg.MustRegister(duration, runs, lastSuccess)

	for _, job := range jobs {
		job = normalizeLabel(job)
		runs.WithLabelValues(job, outcomeSuccess)
		runs.WithLabelValues(job, outcomeFailure)
	}
	return &CronJobMetrics{
		duration:    duration,
		runs:        runs,
		lastSuccess: lastSuccess,
	}
}

// ObserveDuration records how long the named job ran.
func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess counts a successful run and stamps its completion time.
func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.runs == nil {
		return
	}
	job = normalizeLabel(job)
	c.runs.WithLabelValues(job, outcomeSuccess).Inc()
	c.lastSuccess.WithLabelValues(job).SetToCurrentTime()
}

// IncFailure counts a failed run.
func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.runs == nil {
		return
	}
	c.runs.WithLabelValues(normalizeLabel(job), outcomeFailure).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
