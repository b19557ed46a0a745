package retrier

import (
	"context"
	"errors"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// Config describes an exponential backoff. A nil ShouldRetry retries every
// error. MaxRetries of zero leaves the attempt count bounded by MaxElapsedTime
// only.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64
	MaxRetries      uint64

	ShouldRetry ShouldRetryFunc

	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(err error, wait time.Duration)
}

// RetryUnless retries every error except the listed ones and context
// cancellation.
func RetryUnless(permanent ...error) ShouldRetryFunc {
	return func(err error) bool {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		for _, target := range permanent {
			if errors.Is(err, target) {
				return false
			}
		}
		return true
	}
}
