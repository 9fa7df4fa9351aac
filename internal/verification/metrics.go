package verification

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	verifications *prometheus.CounterVec
	scores        *prometheus.HistogramVec
	phaseFailures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_total",
			Help: "Completed verifications by flow and pass/fail.",
		}, []string{"flow", "passed"}),
		scores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verification_score",
			Help:    "Overall verification scores.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}, []string{"flow"}),
		phaseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_phase_failure_total",
			Help: "Oracle or fetch failures absorbed per phase.",
		}, []string{"phase"}),
	}
}

func (m *Metrics) ObserveVerification(flow string, passed bool, score int) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(flow, strconv.FormatBool(passed)).Inc()
	m.scores.WithLabelValues(flow).Observe(float64(score))
}

func (m *Metrics) ObservePhaseFailure(phase string) {
	if m == nil {
		return
	}
	m.phaseFailures.WithLabelValues(phase).Inc()
}
