package postgres

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// queryMetrics records executor round trips
type queryMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newQueryMetrics(reg prometheus.Registerer) *queryMetrics {
	m := &queryMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "icat",
			Name:      "queries_total",
			Help:      "ICAT queries executed, by catalog name and result status.",
		}, []string{"query", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "icat",
			Name:      "query_duration_seconds",
			Help:      "ICAT query latency including row collection.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
	}

	if reg != nil {
		reg.MustRegister(m.total, m.duration)
	}
	return m
}

func (m *queryMetrics) observe(query string, elapsed time.Duration, err error) {
	m.total.WithLabelValues(query, queryStatus(err)).Inc()
	m.duration.WithLabelValues(query).Observe(elapsed.Seconds())
}
