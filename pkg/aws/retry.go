package aws

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 10 * time.Second
)

// withRetry runs op, retrying up to c.retries times with exponential backoff.
// With zero retries op runs exactly once and its error is returned as is.
func (c *Client) withRetry(ctx context.Context, name string, op func() error) error {
	if c.retries <= 0 {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx)

	return backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		c.log.Warn("request failed, retrying",
			zap.String("request", name),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
}
