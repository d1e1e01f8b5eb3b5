package metrics

import "github.com/prometheus/client_golang/prometheus"

// RelayMetrics exposes counters/histograms for the chat relay flows.
type RelayMetrics struct {
	chatTotal       *prometheus.CounterVec
	leadTotal       *prometheus.CounterVec
	alertTotal      *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		chatTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatrelay",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total chat requests by outcome",
		}, []string{"outcome"}),
		leadTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatrelay",
			Subsystem: "leads",
			Name:      "requests_total",
			Help:      "Total lead capture requests by outcome",
		}, []string{"outcome"}),
		alertTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatrelay",
			Subsystem: "alerts",
			Name:      "dispatch_total",
			Help:      "Total WhatsApp alert dispatch attempts by status",
		}, []string{"status"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chatrelay",
			Subsystem: "provider",
			Name:      "call_latency_seconds",
			Help:      "Latency of outbound provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatTotal, m.leadTotal, m.alertTotal, m.providerLatency)
	return m
}

func (m *RelayMetrics) ObserveChat(outcome string) {
	if m == nil {
		return
	}
	m.chatTotal.WithLabelValues(outcome).Inc()
}

func (m *RelayMetrics) ObserveLead(outcome string) {
	if m == nil {
		return
	}
	m.leadTotal.WithLabelValues(outcome).Inc()
}

func (m *RelayMetrics) ObserveAlert(status string) {
	if m == nil {
		return
	}
	m.alertTotal.WithLabelValues(status).Inc()
}

func (m *RelayMetrics) ObserveProviderLatency(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.providerLatency.WithLabelValues(provider).Observe(seconds)
}
