package metrics

import "github.com/prometheus/client_golang/prometheus"

// TriageMetrics exposes counters/histograms for the triage pipeline.
type TriageMetrics struct {
	messagesTotal *prometheus.CounterVec
	riskScore     prometheus.Histogram
	oracleTotal   *prometheus.CounterVec
	oracleLatency *prometheus.HistogramVec
}

func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	m := &TriageMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sanad",
			Subsystem: "triage",
			Name:      "messages_total",
			Help:      "Total processed messages by triage action and selector rule",
		}, []string{"action", "rule"}),
		riskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sanad",
			Subsystem: "triage",
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores",
			Buckets:   []float64{0.0, 0.1, 0.3, 0.5, 0.8, 0.95, 1.0},
		}),
		oracleTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sanad",
			Subsystem: "triage",
			Name:      "oracle_requests_total",
			Help:      "Total text oracle calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		oracleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sanad",
			Subsystem: "triage",
			Name:      "oracle_latency_seconds",
			Help:      "Latency of text oracle calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.riskScore, m.oracleTotal, m.oracleLatency)
	return m
}

func (m *TriageMetrics) ObserveMessage(action, rule string, riskScore float64) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(action, rule).Inc()
	m.riskScore.Observe(riskScore)
}

func (m *TriageMetrics) ObserveOracle(provider, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.oracleTotal.WithLabelValues(provider, outcome).Inc()
	m.oracleLatency.WithLabelValues(provider).Observe(seconds)
}
