package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	EnlargeRequests  *prometheus.CounterVec
	ImageProcessTime *prometheus.HistogramVec
	ServedCached     *prometheus.CounterVec
	HTTPRequestTime  *prometheus.HistogramVec
}

func InitializeMetrics(registry prometheus.Registerer, constLabels prometheus.Labels) *Metrics {
	metrics := &Metrics{
		EnlargeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "enlarge_requests_total",
			Help:        "Number of enlarge operations by algorithm and outcome",
			ConstLabels: constLabels,
		}, []string{"algorithm", "status"}),
		ImageProcessTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "image_process_time_seconds",
			Help:        "Time spent decoding, resampling and encoding an image",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"algorithm"}),
		ServedCached: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "served_cached_total",
			Help:        "Number of results served from cache",
			ConstLabels: constLabels,
		}, []string{"tier"}),
		HTTPRequestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		metrics.EnlargeRequests,
		metrics.ImageProcessTime,
		metrics.ServedCached,
		metrics.HTTPRequestTime,
	)

	return metrics
}

// ObserveEnlarge records one enlarge operation. A nil receiver is a no-op so
// callers can run without metrics.
func (m *Metrics) ObserveEnlarge(algorithm string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.EnlargeRequests.WithLabelValues(algorithm, status).Inc()
	if err == nil {
		m.ImageProcessTime.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) CacheHit(tier string) {
	if m == nil {
		return
	}
	m.ServedCached.WithLabelValues(tier).Inc()
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if path == "" {
		path = "unmatched"
	}
	m.HTTPRequestTime.WithLabelValues(method, path, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
