// Package metrics holds the prometheus collectors for exports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultCacheHit = "cache_hit"
	ResultError    = "error"
)

// Recorder records export outcomes.
type Recorder struct {
	exports  *prometheus.CounterVec
	duration prometheus.Histogram
	pages    prometheus.Histogram
	bytes    prometheus.Histogram
}

// New registers the export collectors with reg.
func New(reg prometheus.Registerer) (r *Recorder, err error) {
	r = &Recorder{
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkdisout",
			Name:      "exports_total",
			Help:      "Portfolio exports by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "checkdisout",
			Name:      "export_duration_seconds",
			Help:      "Time spent composing and finalizing a portfolio PDF.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		pages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "checkdisout",
			Name:      "export_pages",
			Help:      "Pages per exported portfolio.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		bytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "checkdisout",
			Name:      "export_bytes",
			Help:      "Size of exported portfolio PDFs.",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
	}

	for _, c := range []prometheus.Collector{r.exports, r.duration, r.pages, r.bytes} {
		err = reg.Register(c)
		if err != nil {
			return r, err
		}
	}

	return r, err
}

// Rendered records a freshly rendered export.
func (r *Recorder) Rendered(elapsed time.Duration, pages, size int) {
	r.exports.WithLabelValues(ResultOK).Inc()
	r.duration.Observe(elapsed.Seconds())
	r.pages.Observe(float64(pages))
	r.bytes.Observe(float64(size))
}

// CacheHit records an export served from the cache.
func (r *Recorder) CacheHit() {
	r.exports.WithLabelValues(ResultCacheHit).Inc()
}

// Failed records a failed export.
func (r *Recorder) Failed() {
	r.exports.WithLabelValues(ResultError).Inc()
}
