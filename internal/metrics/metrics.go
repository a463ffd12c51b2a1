// Package metrics exposes Prometheus metrics for the RPC surface and the
// settlement engine.
package metrics

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripsplit"

// Metrics holds the collectors registered by New.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	transfers prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		transfers: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Transfers proposed per settlement report.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}
}

// Interceptor returns a Connect interceptor that counts and times every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.requests.WithLabelValues(procedure, code).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}

// RequestCounter returns the request counter for one procedure and code.
func (m *Metrics) RequestCounter(procedure, code string) prometheus.Counter {
	return m.requests.WithLabelValues(procedure, code)
}

// ObserveSettlement records the size of a settlement plan. Safe on a nil *Metrics.
func (m *Metrics) ObserveSettlement(transfers int) {
	if m == nil {
		return
	}
	m.transfers.Observe(float64(transfers))
}

// Handler serves the metrics gathered from g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
