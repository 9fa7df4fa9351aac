package pattern

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	matches      *prometheus.CounterVec
	learned      prometheus.Counter
	storeFailure prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pattern_match_total",
			Help: "Pattern lookups by outcome (matched, learned, skipped).",
		}, []string{"outcome"}),
		learned: factory.NewCounter(prometheus.CounterOpts{
			Name: "pattern_learned_total",
			Help: "New evidence patterns persisted.",
		}),
		storeFailure: factory.NewCounter(prometheus.CounterOpts{
			Name: "pattern_store_failure_total",
			Help: "Pattern store operations that failed.",
		}),
	}
}

func (m *Metrics) ObserveMatch(outcome string) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLearned() {
	if m == nil {
		return
	}
	m.learned.Inc()
}

func (m *Metrics) ObserveStoreFailure() {
	if m == nil {
		return
	}
	m.storeFailure.Inc()
}
