// Package metrics collects Prometheus metrics for the settleup server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	handler             http.Handler
	rpcTotal            *prometheus.CounterVec
	rpcDuration         *prometheus.HistogramVec
	settlementSize      prometheus.Histogram
	journeysArchived    prometheus.Counter
	invariantViolations prometheus.Counter
	cacheLookups        *prometheus.CounterVec
}

// New initializes the registry and the server metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		rpcTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settleup_rpc_requests_total",
			Help: "RPC calls by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "settleup_rpc_duration_seconds",
			Help:    "RPC latency by procedure.",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlementSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "settleup_settlement_transactions",
			Help:    "Number of transactions per computed settlement.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		journeysArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "settleup_journeys_archived_total",
			Help: "Journeys archived.",
		}),
		invariantViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "settleup_settlement_invariant_violations_total",
			Help: "Settlements computed from balances that did not net to zero.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "settleup_cache_lookups_total",
			Help: "Ledger cache lookups by result.",
		}, []string{"result"}),
	}
	registry.MustRegister(
		m.rpcTotal,
		m.rpcDuration,
		m.settlementSize,
		m.journeysArchived,
		m.invariantViolations,
		m.cacheLookups,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Interceptor records count and latency of every RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		if m == nil {
			return next
		}
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			procedure := req.Spec().Procedure
			m.rpcTotal.WithLabelValues(procedure, code).Inc()
			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// ObserveSettlement records the size of a computed settlement.
func (m *Metrics) ObserveSettlement(transactions int) {
	if m == nil {
		return
	}
	m.settlementSize.Observe(float64(transactions))
}

// JourneyArchived counts an archived journey.
func (m *Metrics) JourneyArchived() {
	if m == nil {
		return
	}
	m.journeysArchived.Inc()
}

// InvariantViolation counts a settlement computed from an inconsistent ledger.
func (m *Metrics) InvariantViolation() {
	if m == nil {
		return
	}
	m.invariantViolations.Inc()
}

// CacheLookup counts a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
