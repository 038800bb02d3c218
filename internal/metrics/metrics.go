// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: f8091223-3445-5667-7a8b-9c0d1e2f3041

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	decodesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "itl_exporter",
		Name:      "decodes_started_total",
		Help:      "Total number of library decodes started",
	})
	decodesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "itl_exporter",
		Name:      "decodes_completed_total",
		Help:      "Total number of library decodes successfully completed",
	})
	decodesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "itl_exporter",
		Name:      "decodes_failed_total",
		Help:      "Total number of library decodes that failed",
	})
	decodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "itl_exporter",
		Name:      "decode_duration_seconds",
		Help:      "Histogram of library decode durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // ~10ms up to ~40s
	})
	recordsDecoded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "itl_exporter",
		Name:      "records_decoded_total",
		Help:      "Total number of chunk records decoded by tag",
	}, []string{"tag"})
	exportsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "itl_exporter",
		Name:      "exports_completed_total",
		Help:      "Total number of export runs completed by format",
	}, []string{"format"})

	tracksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "itl_exporter",
		Name:      "tracks_total",
		Help:      "Track count of the most recently decoded library",
	})
	playlistsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "itl_exporter",
		Name:      "playlists_total",
		Help:      "Playlist count of the most recently decoded library",
	})
)

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			decodesStarted,
			decodesCompleted,
			decodesFailed,
			decodeDuration,
			recordsDecoded,
			exportsCompleted,
			tracksGauge,
			playlistsGauge,
		)
	})
}

// DecodeStarted marks the beginning of a decode run.
func DecodeStarted() {
	decodesStarted.Inc()
}

// DecodeCompleted records a successful decode and its duration.
func DecodeCompleted(d time.Duration) {
	decodesCompleted.Inc()
	decodeDuration.Observe(d.Seconds())
}

// DecodeFailed records a failed decode.
func DecodeFailed() {
	decodesFailed.Inc()
}

// RecordsDecoded adds per-tag chunk counts from a finished decode.
func RecordsDecoded(counts map[string]int) {
	for tag, n := range counts {
		recordsDecoded.WithLabelValues(tag).Add(float64(n))
	}
}

// ExportCompleted records one finished export run for a format.
func ExportCompleted(format string) {
	exportsCompleted.WithLabelValues(format).Inc()
}

// LibraryDecoded updates the library size gauges.
func LibraryDecoded(tracks, playlists int) {
	tracksGauge.Set(float64(tracks))
	playlistsGauge.Set(float64(playlists))
}
