// Package metrics exposes Prometheus instruments for the favourites store and the news client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsfav"

// Metrics groups the service instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	favouriteOps *prometheus.CounterVec
	favourites   prometheus.Gauge
	newsRequests *prometheus.CounterVec
	newsLatency  prometheus.Histogram
}

// New registers the instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		favouriteOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favourite_operations_total",
			Help:      "Favourites store operations by operation and result.",
		}, []string{"operation", "result"}),
		favourites: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favourites",
			Help:      "Number of articles currently in the favourites list.",
		}),
		newsRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_api_requests_total",
			Help:      "Requests sent to the news retrieval service by kind and result.",
		}, []string{"kind", "result"}),
		newsLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "news_api_request_duration_seconds",
			Help:      "Latency of requests to the news retrieval service.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// FavouriteOp counts one favourites store operation.
func (m *Metrics) FavouriteOp(op string, ok bool) {
	if m == nil {
		return
	}
	m.favouriteOps.WithLabelValues(op, result(ok)).Inc()
}

// FavouritesCount records the current list size.
func (m *Metrics) FavouritesCount(n int) {
	if m == nil {
		return
	}
	m.favourites.Set(float64(n))
}

// NewsRequest records one call to the news retrieval service.
func (m *Metrics) NewsRequest(kind string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.newsRequests.WithLabelValues(kind, result(ok)).Inc()
	m.newsLatency.Observe(elapsed.Seconds())
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
