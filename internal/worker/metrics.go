package worker

import "github.com/prometheus/client_golang/prometheus"

// Failure reasons reported in greeting_failures_total.
const (
	reasonInvalidRequest  = "invalid_request"
	reasonNilUser         = "nil_user"
	reasonUnknownCategory = "unknown_category"
	reasonPublish         = "publish"
	reasonOther           = "other"
)

// Metrics holds the worker's Prometheus collectors
type Metrics struct {
	rendered *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the worker collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greetings_rendered_total",
			Help: "Number of greetings rendered, by category.",
		}, []string{"category"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "greeting_failures_total",
			Help: "Number of greeting requests that failed, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.rendered, m.failures)
	return m
}

func (m *Metrics) observeRendered(category string) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(category).Inc()
}

func (m *Metrics) observeFailure(reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}
