// Package metrics holds the prometheus collectors of the generation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vertical"

// Outcome labels of a generation run
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeImageFailed = "image_failed"
	OutcomePinFailed   = "pin_failed"
	OutcomeError       = "error"
)

// Stage labels for durations
const (
	StagePrompt   = "prompt"
	StageImage    = "image"
	StageDownload = "download"
	StagePinImage = "pin_image"
	StagePinMeta  = "pin_metadata"
	StageLink     = "link"
)

var (
	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Generation runs by strategy and outcome",
			Name:      "generations_total",
			Namespace: namespace,
		},
		[]string{"strategy", "outcome"},
	)
	imageAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Image generation attempts by result",
			Name:      "image_attempts_total",
			Namespace: namespace,
		},
		[]string{"result"},
	)
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Help:      "Time spent in each pipeline stage",
			Name:      "stage_duration_seconds",
			Namespace: namespace,
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"stage"},
	)
	linkFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "setTokenURI calls that failed or were skipped",
			Name:      "metadata_link_failures_total",
			Namespace: namespace,
		},
	)
	inFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Generations currently running",
			Name:      "generations_in_flight",
			Namespace: namespace,
		},
	)
)

func init() {
	prometheus.MustRegister(
		generations,
		imageAttempts,
		stageDuration,
		linkFailures,
		inFlight,
	)
}

func ObserveGeneration(strategy, outcome string) {
	generations.WithLabelValues(strategy, outcome).Inc()
}

func ObserveImageAttempt(ok bool) {
	result := "error"
	if ok {
		result = "ok"
	}
	imageAttempts.WithLabelValues(result).Inc()
}

// ObserveStage records the time since start for a stage
func ObserveStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func ObserveLinkFailure() {
	linkFailures.Inc()
}

// TrackInFlight increments the running gauge and returns its release
func TrackInFlight() func() {
	inFlight.Inc()
	return inFlight.Dec
}
