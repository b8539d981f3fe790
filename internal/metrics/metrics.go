// Package metrics defines the Prometheus collectors exported by crptd: registry
// submission outcomes, throttle gate wait/hold times and queue depths, and the
// gateway's ingress rate limiting decisions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crpt"

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "submissions_total", Help: "Document submissions by outcome."},
		[]string{"outcome"},
	)
	SubmissionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Name: "submission_duration_seconds", Help: "Duration of the registry POST.", Buckets: prometheus.DefBuckets},
	)
	GateWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Subsystem: "gate", Name: "wait_seconds", Help: "Time callers queued for the throttle slot.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 10)},
	)
	GateHold = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Subsystem: "gate", Name: "hold_seconds", Help: "Time the throttle slot was held, call plus spacing.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 10)},
	)
	GateWaiting = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Subsystem: "gate", Name: "waiting", Help: "Callers queued for the throttle slot."},
	)
	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Subsystem: "queue", Name: "depth", Help: "Documents waiting in the gateway queue."},
	)
	QueueRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "queue", Name: "rejected_total", Help: "Documents rejected because the gateway queue was full."},
	)
	RateLimitAllowed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "ingress", Name: "allowed_total", Help: "Gateway requests admitted by the per-client limiter."},
	)
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "ingress", Name: "rejected_total", Help: "Gateway requests rejected by the per-client limiter."},
	)
)

// RegisterCollectors registers every collector of this package with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		Submissions,
		SubmissionDuration,
		GateWait,
		GateHold,
		GateWaiting,
		QueueDepth,
		QueueRejected,
		RateLimitAllowed,
		RateLimitRejected,
	)
}

// GateObserver feeds throttle gate events into the gate collectors.
type GateObserver struct{}

func (GateObserver) ObserveWait(d time.Duration) { GateWait.Observe(d.Seconds()) }

func (GateObserver) ObserveHold(d time.Duration) { GateHold.Observe(d.Seconds()) }

func (GateObserver) SetWaiting(n int64) { GateWaiting.Set(float64(n)) }
