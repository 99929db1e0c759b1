package jetstream

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/levelfourab/s2-go/types"
)

// retry runs action until it succeeds, fails with an error that is not
// retryable, or the retries are used up. Only idempotent reads go through
// here.
func (c *Client) retry(ctx context.Context, op types.Operation, action func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)

	err := backoff.RetryNotify(
		func() error {
			err := toServiceError(op, action())
			if err != nil && !types.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		policy,
		func(err error, delay time.Duration) {
			c.logger.Warn(
				"Retrying request",
				slog.String("operation", string(op)),
				slog.Duration("delay", delay),
				slog.String("error", err.Error()),
			)
		},
	)

	return toServiceError(op, err)
}
