package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	JobsProcessed    *prometheus.CounterVec
	FramingRequests  *prometheus.CounterVec
	ElevationErrors  prometheus.Counter
	ElevationSeconds *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	ActiveWorkers    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		JobsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "framing_jobs_processed_total",
			Help: "Total number of processed framing jobs.",
		}, []string{"status"}),
		FramingRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "framing_requests_total",
			Help: "Total number of framing computations by outcome.",
		}, []string{"status"}),
		ElevationErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "elevation_provider_errors_total",
			Help: "Total number of failed elevation lookups that fell back to zero.",
		}),
		ElevationSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "elevation_provider_request_duration_seconds",
			Help:    "Duration of requests to the elevation provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "elevation_cache_lookups_total",
			Help: "Total number of elevation cache lookups by result.",
		}, []string{"result"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "framing_active_workers",
			Help: "Current number of active workers processing framing jobs.",
		}),
	}
}
