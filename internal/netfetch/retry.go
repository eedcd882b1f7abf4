package netfetch

import (
	"context"
	"time"
)

// RetryConfig configures retry behaviour with exponential backoff (spec §5:
// "HTTP fetches ... retry with exponential backoff (3 attempts)").
type RetryConfig struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig matches spec §5's three-attempt default.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

type retryFetcher struct {
	inner Fetcher
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry wraps inner with exponential-backoff retry per cfg. The last
// attempt's error is returned, wrapped in a *FetchError.
func WithRetry(inner Fetcher, cfg RetryConfig) Fetcher {
	return &retryFetcher{inner: inner, cfg: cfg, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *retryFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	backoff := r.cfg.InitialBackoff
	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := r.sleep(ctx, backoff); err != nil {
				return nil, &FetchError{URL: url, Err: err}
			}
			backoff = time.Duration(float64(backoff) * r.cfg.BackoffMultiplier)
			if backoff > r.cfg.MaxBackoff {
				backoff = r.cfg.MaxBackoff
			}
		}
		data, err := r.inner.Fetch(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, &FetchError{URL: url, Err: lastErr}
}
