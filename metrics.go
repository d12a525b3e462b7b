package migrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics собирает статистику выполнения миграций. Нулевой указатель допустим и ничего не записывает.
type Metrics struct {
	applied  prometheus.Counter
	reverted prometheus.Counter
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		applied: factory.NewCounter(prometheus.CounterOpts{
			Name: "migrator_applied_total",
			Help: "Number of migrations applied",
		}),
		reverted: factory.NewCounter(prometheus.CounterOpts{
			Name: "migrator_reverted_total",
			Help: "Number of migrations reverted",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "migrator_failures_total",
			Help: "Number of failed schema changes by direction",
		}, []string{"direction"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "migrator_duration_seconds",
			Help:    "Duration of a single schema change by direction",
			Buckets: prometheus.DefBuckets,
		}, []string{"direction"}),
	}
}

func (m *Metrics) observe(direction Direction, started time.Time, err error) {
	if m == nil {
		return
	}

	m.duration.WithLabelValues(string(direction)).Observe(time.Since(started).Seconds())
	if err != nil {
		m.failures.WithLabelValues(string(direction)).Inc()
		return
	}

	switch direction {
	case DirectionUp:
		m.applied.Inc()
	case DirectionDown:
		m.reverted.Inc()
	}
}
