// Package netfetch provides the retry, backoff and on-disk caching
// wrapper around the byte-fetcher collaborator (spec §5, §9 cache-layout
// design note). The decorators wrap whatever Fetcher the CLI layer injects;
// the one net/http-backed Fetcher (NewHTTPFetcher in http.go) is built
// only by the CLI layer.
package netfetch

import (
	"context"
	"fmt"
)

// Fetcher retrieves the bytes at url. Implementations are injected by the
// CLI layer; netfetch only wraps them with retry/backoff/cache behaviour.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchFunc adapts a plain function to Fetcher.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetchFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// FetchError wraps a failed fetch with the URL that failed, surfaced to
// the pipeline as an OverlayFetchError (spec §7).
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("netfetch: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
