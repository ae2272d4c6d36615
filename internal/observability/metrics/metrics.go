package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssistantMetrics exposes counters/histograms for the scheduling assistant.
type AssistantMetrics struct {
	turnsTotal          *prometheus.CounterVec
	commitsTotal        *prometheus.CounterVec
	reservationsCreated prometheus.Counter
	turnLatency         prometheus.Histogram
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pragma",
			Subsystem: "assistant",
			Name:      "turns_total",
			Help:      "Total chat turns processed, by outcome",
		}, []string{"outcome"}),
		commitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pragma",
			Subsystem: "assistant",
			Name:      "commits_total",
			Help:      "Total reservation commits attempted, by status",
		}, []string{"status"}),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pragma",
			Subsystem: "reservations",
			Name:      "created_total",
			Help:      "Total reservation records persisted",
		}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pragma",
			Subsystem: "assistant",
			Name:      "turn_latency_seconds",
			Help:      "Latency of chat turn processing",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.commitsTotal, m.reservationsCreated, m.turnLatency)
	return m
}

func (m *AssistantMetrics) ObserveTurn(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(outcome).Inc()
	m.turnLatency.Observe(seconds)
}

func (m *AssistantMetrics) ObserveCommit(status string, records int) {
	if m == nil {
		return
	}
	m.commitsTotal.WithLabelValues(status).Inc()
	if records > 0 {
		m.reservationsCreated.Add(float64(records))
	}
}
