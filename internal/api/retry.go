package api

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry runs fn up to attempts times with linear backoff. Client errors
// (4xx) are never retried; network and server failures are. Session and
// pagination flows do not use this; callers opt in per request.
func Retry(ctx context.Context, attempts uint64, delay time.Duration, fn func(context.Context) error) error {
	if attempts == 0 {
		attempts = 3
	}
	b := retry.WithMaxRetries(attempts-1, retry.NewConstant(delay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return err
		}
		return retry.RetryableError(err)
	})
}
