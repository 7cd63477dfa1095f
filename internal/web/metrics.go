package web

import (
	"net/http"
	"strconv"
	"time"

	"clinicstats/internal/visits"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instrumentation for the server.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	datasetRecords prometheus.Gauge
	datasetLoaded  prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinicstats_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinicstats_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		datasetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clinicstats_dataset_records",
			Help: "Number of visit records in the loaded dataset.",
		}),
		datasetLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clinicstats_dataset_loaded_timestamp_seconds",
			Help: "Unix time at which the dataset snapshot was loaded.",
		}),
	}
}

// observeDataset records dataset facts for the loaded snapshot.
func (m *metrics) observeDataset(ds *visits.Dataset) {
	m.datasetRecords.Set(float64(ds.Len()))
	m.datasetLoaded.Set(float64(ds.LoadedAt.Unix()))
}

// middleware records request counts and latency per chi route pattern.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
