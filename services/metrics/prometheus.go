// Package metricsvc exposes dashboard activity as Prometheus metrics.
package metricsvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/masomo-admin/core/view"
)

const namespace = "masomo"

// Recorder counts store mutations & sessions on its own registry.
type Recorder struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	sessions  prometheus.Gauge
	requests  *prometheus.CounterVec
}

var _ view.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Number of collection mutations, by collection and operation.",
		}, []string{"collection", "op"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of open dashboard sessions.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "code"}),
	}
	r.registry.MustRegister(
		r.mutations,
		r.sessions,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Mutated(collection, op string) {
	r.mutations.WithLabelValues(collection, op).Inc()
}

func (r *Recorder) SessionOpened() { r.sessions.Inc() }

func (r *Recorder) SessionClosed() { r.sessions.Dec() }

func (r *Recorder) Request(method, route, code string) {
	r.requests.WithLabelValues(method, route, code).Inc()
}

// Handler serves the exposition of the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
