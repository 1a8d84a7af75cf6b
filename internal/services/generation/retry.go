package generation

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/clients/imagegen"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/metrics"
)

// linearBackOff waits delay*n before retry n, capped at max
type linearBackOff struct {
	delay time.Duration
	max   time.Duration
	n     int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	wait := b.delay * time.Duration(b.n)
	if wait > b.max {
		return b.max
	}
	return wait
}

func (b *linearBackOff) Reset() {
	b.n = 0
}

// generateImage asks the provider for an image, retrying every failure the
// same way. Safety filter hits and timeouts only change the log line.
func (s *service) generateImage(ctx context.Context, log *zap.Logger, req *imagegen.ImageRequest) (imagegen.Image, error) {
	start := time.Now()
	defer metrics.ObserveStage(metrics.StageImage, start)

	var (
		attempts int
		lastErr  error
		image    imagegen.Image
	)

	operation := func() error {
		attempts++
		images, err := s.images.Generate(ctx, req)
		if err == nil && len(images) == 0 {
			err = errors.Internalf("image provider returned no images")
		}
		metrics.ObserveImageAttempt(err == nil)
		if err != nil {
			lastErr = err
			return err
		}
		image = images[0]
		return nil
	}

	notify := func(err error, wait time.Duration) {
		fields := []zap.Field{
			zap.Int("attempt", attempts),
			zap.Int("max_attempts", s.retryAttempts),
			zap.Duration("wait", wait),
			zap.Error(err),
		}
		switch {
		case isSafetyRejection(err):
			log.Warn("image rejected by safety filter, retrying", fields...)
		case errors.As(err, new(interface{ Timeout() bool })) || strings.Contains(err.Error(), "deadline exceeded"):
			log.Warn("image generation timed out, retrying", fields...)
		default:
			log.Warn("image generation failed, retrying", fields...)
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{delay: s.retryDelay, max: MaxRetryWait}, uint64(s.retryAttempts-1)),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctx.Err() != nil {
			return imagegen.Image{}, errors.WrapWithCode(ctx.Err(), errors.CodeUnavailable, "image generation canceled")
		}
		if lastErr == nil {
			lastErr = err
		}
		log.Error("image generation failed", zap.Int("attempts", attempts), zap.Error(lastErr))
		return imagegen.Image{}, errors.Unavailablef("failed after %d attempts. Last error: %s", attempts, lastErr.Error()).
			WithMeta("attempts", attempts)
	}

	return image, nil
}

func isSafetyRejection(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nsfw") || strings.Contains(msg, "safety")
}
