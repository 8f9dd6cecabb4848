package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	feedsGenerated   *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	bodiesResolved   prometheus.Gauge
	aspectsDetected  prometheus.Gauge
	computeDuration  prometheus.Histogram
	errorsTotal      *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		feedsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrofeed_feeds_generated_total",
				Help: "Total number of feeds generated, by mode",
			},
			[]string{"mode"},
		),
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrofeed_provider_requests_total",
				Help: "Total ephemeris provider requests, by provider and outcome",
			},
			[]string{"provider", "ok"},
		),
		providerLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astrofeed_provider_duration_seconds",
				Help:    "Duration of ephemeris provider requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		bodiesResolved: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "astrofeed_bodies_resolved",
				Help: "Number of bodies resolved in the last feed",
			},
		),
		aspectsDetected: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "astrofeed_aspects_detected",
				Help: "Number of aspects detected in the last feed",
			},
		),
		computeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "astrofeed_compute_duration_seconds",
				Help:    "End-to-end feed computation duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrofeed_errors_total",
				Help: "Total number of errors encountered, by type",
			},
			[]string{"type"},
		),
	}
}

// RecordFeedGenerated records a completed feed for a mode.
func (r *Recorder) RecordFeedGenerated(mode string) {
	r.feedsGenerated.WithLabelValues(mode).Inc()
}

// RecordProviderRequest records an ephemeris provider request outcome.
func (r *Recorder) RecordProviderRequest(provider string, ok bool) {
	r.providerRequests.WithLabelValues(provider, strconv.FormatBool(ok)).Inc()
}

// RecordProviderLatency records a provider round trip in seconds.
func (r *Recorder) RecordProviderLatency(provider string, seconds float64) {
	r.providerLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordBodiesResolved records how many bodies the last feed resolved.
func (r *Recorder) RecordBodiesResolved(n int) {
	r.bodiesResolved.Set(float64(n))
}

// RecordAspects records how many aspects the last feed detected.
func (r *Recorder) RecordAspects(n int) {
	r.aspectsDetected.Set(float64(n))
}

// RecordComputeDuration records one feed computation in seconds.
func (r *Recorder) RecordComputeDuration(seconds float64) {
	r.computeDuration.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
