// Package metrics records workflow timings in a private Prometheus registry
// and pushes them to a Pushgateway at the end of a run.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "acrwebhooks"

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Recorder holds the metrics of a single run.
type Recorder struct {
	registry *prometheus.Registry

	phaseDuration *prometheus.HistogramVec
	phaseFailures *prometheus.CounterVec
	webhookEvents *prometheus.GaugeVec
	runs          *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "phase_duration_seconds",
				Help:      "Duration of workflow phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12), // 0.5s to ~17min
			},
			[]string{"phase", "result"},
		),
		phaseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "phase_failures_total",
				Help:      "Total number of failed workflow phases",
			},
			[]string{"phase"},
		),
		webhookEvents: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "events",
				Help:      "Number of recorded webhook events by listing stage",
			},
			[]string{"webhook", "stage"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "runs_total",
				Help:      "Total number of workflow runs by result",
			},
			[]string{"result"},
		),
	}
	r.registry.MustRegister(r.phaseDuration, r.phaseFailures, r.webhookEvents, r.runs)
	return r
}

// ObservePhase records how long a phase took and whether it failed.
func (r *Recorder) ObservePhase(phase string, d time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
		r.phaseFailures.WithLabelValues(phase).Inc()
	}
	r.phaseDuration.WithLabelValues(phase, result).Observe(d.Seconds())
}

// SetWebhookEvents records the size of an event listing.
func (r *Recorder) SetWebhookEvents(webhook, stage string, count int) {
	r.webhookEvents.WithLabelValues(webhook, stage).Set(float64(count))
}

// ObserveRun records the outcome of a whole run.
func (r *Recorder) ObserveRun(err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	r.runs.WithLabelValues(result).Inc()
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push sends every metric to the Pushgateway at url, grouped by run ID.
func (r *Recorder) Push(ctx context.Context, url, job, runID string) error {
	pusher := push.New(url, job).Gatherer(r.registry)
	if runID != "" {
		pusher = pusher.Grouping("run_id", runID)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
