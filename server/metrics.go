package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Token exchange outcomes, one per metric label value.
const (
	resultSuccess           = "success"
	resultInvalidRequest    = "invalid_request"
	resultUnavailable       = "upstream_unavailable"
	resultRejected          = "exchange_rejected"
	resultMalformedUpstream = "malformed_upstream_response"
	resultInternal          = "internal_error"
)

// Metrics holds the Prometheus collectors of the server.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	TokenExchangesTotal *prometheus.CounterVec
	ExchangeDuration    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		TokenExchangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_exchanges_total",
				Help: "Authorization code exchanges by outcome",
			},
			[]string{"result"},
		),
		ExchangeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "token_exchange_upstream_duration_seconds",
				Help:    "Latency of the upstream OAuth2 token request",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}
	reg.MustRegister(m.HTTPRequestsTotal, m.TokenExchangesTotal, m.ExchangeDuration)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveExchange(result string) {
	m.TokenExchangesTotal.WithLabelValues(result).Inc()
}
