package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(generations.WithLabelValues("legacy", OutcomeSuccess))
	ObserveGeneration("legacy", OutcomeSuccess)
	assert.Equal(t, before+1, testutil.ToFloat64(generations.WithLabelValues("legacy", OutcomeSuccess)))
}

func TestObserveImageAttempt(t *testing.T) {
	ok := testutil.ToFloat64(imageAttempts.WithLabelValues("ok"))
	failed := testutil.ToFloat64(imageAttempts.WithLabelValues("error"))

	ObserveImageAttempt(true)
	ObserveImageAttempt(false)
	ObserveImageAttempt(false)

	assert.Equal(t, ok+1, testutil.ToFloat64(imageAttempts.WithLabelValues("ok")))
	assert.Equal(t, failed+2, testutil.ToFloat64(imageAttempts.WithLabelValues("error")))
}

func TestTrackInFlight(t *testing.T) {
	release := TrackInFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(inFlight))
	release()
	assert.Equal(t, 0.0, testutil.ToFloat64(inFlight))
}

func TestObserveStage(t *testing.T) {
	ObserveStage(StagePrompt, time.Now())
	assert.GreaterOrEqual(t, testutil.CollectAndCount(stageDuration), 1)
}
