// Package metrics owns the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type Registry struct {
	reg *prometheus.Registry

	ordersSubmitted *prometheus.CounterVec
	posRequests     *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	notifications   *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		ordersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Order submissions by outcome code.",
		}, []string{"outcome"}),
		posRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pos_requests_total",
			Help:      "Calls to the POS API by method and HTTP status.",
		}, []string{"method", "status"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"route"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Promotion cache lookups by key and result.",
		}, []string{"key", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Operations channel notifications by result.",
		}, []string{"result"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ordersSubmitted,
		r.posRequests,
		r.rateLimited,
		r.cacheLookups,
		r.notifications,
	)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *Registry) OrderSubmitted(outcome string) {
	r.ordersSubmitted.WithLabelValues(outcome).Inc()
}

// POSRequest records one POS call; status 0 means a transport failure.
func (r *Registry) POSRequest(method string, status int) {
	r.posRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (r *Registry) RateLimited(route string) {
	r.rateLimited.WithLabelValues(route).Inc()
}

func (r *Registry) CacheHit(key string) {
	r.cacheLookups.WithLabelValues(key, "hit").Inc()
}

func (r *Registry) CacheMiss(key string) {
	r.cacheLookups.WithLabelValues(key, "miss").Inc()
}

func (r *Registry) Notification(ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	r.notifications.WithLabelValues(result).Inc()
}
