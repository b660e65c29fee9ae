package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Restore pipeline metrics
	framesEmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restore_frames_emitted_total",
		Help: "Total frames emitted per output track",
	}, []string{"track"})

	selectorChoicesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restore_selector_choices_total",
		Help: "Total pattern selector decisions by source",
	}, []string{"source"})

	boundaryCorrectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restore_boundary_corrections_total",
		Help: "Total scene boundary corrections by edge",
	}, []string{"edge"})

	// Deblend metrics
	deblendFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deblend_frames_synthesized_total",
		Help: "Total deblended frames synthesized",
	})

	// Comb mask metrics
	masksComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "combmask_masks_computed_total",
		Help: "Total comb masks computed",
	})

	// Scan metrics
	scanFramesScannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scan_frames_scanned_total",
		Help: "Total frames examined per scan pass",
	}, []string{"pass"})

	scanFramesFlaggedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scan_frames_flagged_total",
		Help: "Total frames flagged per scan pass",
	}, []string{"pass"})

	scanPassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scan_pass_duration_seconds",
		Help:    "Scan pass duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~262s
	}, []string{"pass"})

	// Job metrics
	jobsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cadence_jobs_active",
		Help: "Number of jobs currently running",
	})
)

// IncrementFrameEmitted increments the emitted frame counter for a track
func IncrementFrameEmitted(track string) {
	framesEmittedTotal.WithLabelValues(track).Inc()
}

// IncrementSelectorChoice increments the selector decision counter for a source
func IncrementSelectorChoice(source string) {
	selectorChoicesTotal.WithLabelValues(source).Inc()
}

// IncrementBoundaryCorrection increments the boundary correction counter for an edge
func IncrementBoundaryCorrection(edge string) {
	boundaryCorrectionsTotal.WithLabelValues(edge).Inc()
}

// IncrementDeblendSynthesized increments the synthesized frame counter
func IncrementDeblendSynthesized() {
	deblendFramesTotal.Inc()
}

// IncrementMaskComputed increments the comb mask counter
func IncrementMaskComputed() {
	masksComputedTotal.Inc()
}

// RecordScanResult records the totals of a completed scan pass
func RecordScanResult(pass string, scanned, flagged int) {
	scanFramesScannedTotal.WithLabelValues(pass).Add(float64(scanned))
	scanFramesFlaggedTotal.WithLabelValues(pass).Add(float64(flagged))
}

// ObserveScanDuration records the duration of a scan pass
func ObserveScanDuration(pass string, seconds float64) {
	scanPassDuration.WithLabelValues(pass).Observe(seconds)
}

// IncrementJobsActive increments the active job gauge
func IncrementJobsActive() {
	jobsActive.Inc()
}

// DecrementJobsActive decrements the active job gauge
func DecrementJobsActive() {
	jobsActive.Dec()
}
