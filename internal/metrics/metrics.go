package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the serial issuance collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry
	issued   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keyforge",
			Name:      "serials_issued_total",
			Help:      "Serials issued, by product and protocol version.",
		}, []string{"product", "version"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keyforge",
			Name:      "serial_failures_total",
			Help:      "Serial issuance failures, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(m.issued, m.failures, collectors.NewGoCollector())
	return m
}

func (m *Metrics) SerialIssued(product string, version int) {
	m.issued.WithLabelValues(product, strconv.Itoa(version)).Inc()
}

func (m *Metrics) SerialFailed(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
