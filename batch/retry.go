package batch

import (
	"context"
	"time"

	"github.com/fwojciec/kitchensage"
)

// RetryFunc is called before each retry with the upcoming attempt number
// (starting at 2) and the error of the previous attempt.
type RetryFunc func(location string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches location, retrying transient failures once per delay.
// Missing documents (ENOTFOUND) and invalid requests (EINVALID) are returned
// immediately since retrying cannot fix them.
func FetchWithRetry(ctx context.Context, fetcher kitchensage.Fetcher, location string, delays []time.Duration, onRetry RetryFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := fetcher.Fetch(ctx, location)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if onRetry != nil {
			onRetry(location, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch kitchensage.ErrorCode(err) {
	case kitchensage.ENOTFOUND, kitchensage.EINVALID:
		return false
	}
	return true
}
