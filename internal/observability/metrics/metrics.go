package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	upstreamTotal    *prometheus.CounterVec
	lookupsTotal     *prometheus.CounterVec
	submissionsTotal *prometheus.CounterVec
	submitLatency    *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total requests to the remote spa API",
		}, []string{"endpoint", "status"}),
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "booking",
			Name:      "availability_lookups_total",
			Help:      "Total availability derivations served",
		}, []string{"operation"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Total booking submissions by outcome",
		}, []string{"outcome"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spa",
			Subsystem: "booking",
			Name:      "submit_latency_seconds",
			Help:      "Latency of booking submission including upstream calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.upstreamTotal, m.lookupsTotal, m.submissionsTotal, m.submitLatency)
	return m
}

func (m *BookingMetrics) ObserveUpstream(endpoint, status string) {
	if m == nil {
		return
	}
	m.upstreamTotal.WithLabelValues(endpoint, status).Inc()
}

func (m *BookingMetrics) ObserveLookup(operation string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(operation).Inc()
}

func (m *BookingMetrics) ObserveSubmission(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
	m.submitLatency.WithLabelValues(outcome).Observe(seconds)
}
