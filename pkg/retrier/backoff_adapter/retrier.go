package backoff_adapter

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"grubdash/pkg/retrier"
)

type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

// ExecuteWithContext runs fn until it succeeds, returns a permanent error,
// or the backoff budget or ctx runs out. The last error is returned.
func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	return backoff.RetryNotify(
		r.operation(ctx, fn),
		r.policy(ctx),
		r.config.OnRetry,
	)
}

func (r *Retrier) policy(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)

	if r.config.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, r.config.MaxRetries)
	}

	return backoff.WithContext(b, ctx)
}

func (r *Retrier) operation(ctx context.Context, fn func(context.Context) error) backoff.Operation {
	return func() error {
		err := fn(ctx)
		if err != nil && r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}
}
