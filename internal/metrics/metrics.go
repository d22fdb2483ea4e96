// Package metrics holds the prometheus collectors shared by the API client,
// the CRUD lifecycle and the store.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "caseadmin"

// Metrics groups the collectors registered by one client instance.
type Metrics struct {
	Registry *prometheus.Registry

	Requests   *prometheus.CounterVec
	CacheHits  *prometheus.CounterVec
	Dispatches *prometheus.CounterVec
}

// New creates collectors registered on a fresh registry so several clients
// (and parallel tests) never collide on the global one.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Outbound API requests by method and status class.",
		}, []string{"method", "status"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_cache_hits_total",
			Help:      "List reads served from the store without a request.",
		}, []string{"entity"}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_dispatches_total",
			Help:      "Actions reduced by the store.",
		}, []string{"type"}),
	}
	m.Registry.MustRegister(m.Requests, m.CacheHits, m.Dispatches)
	return m
}

// StatusClass maps an HTTP status to "2xx".."5xx"; 0 means the request never
// got a response.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}

func (m *Metrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, StatusClass(status)).Inc()
}

func (m *Metrics) ObserveCacheHit(entity string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(entity).Inc()
}

func (m *Metrics) ObserveDispatch(actionType string) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(actionType).Inc()
}
