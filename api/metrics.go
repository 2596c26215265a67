package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks upload outcomes and sizes.
type Metrics struct {
	uploads *prometheus.CounterVec
	sizes   prometheus.Histogram
}

// NewMetrics registers the service metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filedrop_uploads_total",
			Help: "Upload pipeline runs by terminal outcome.",
		}, []string{"outcome"}),
		sizes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "filedrop_upload_size_bytes",
			Help:    "Size of accepted uploads as stored.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}
}

func (m *Metrics) observe(outcome string, size int64) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
	if size > 0 {
		m.sizes.Observe(float64(size))
	}
}
