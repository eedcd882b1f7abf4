package netfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies the tool to Overpass/WMTS servers per their usage
// policies, which both ask fetchers to self-identify.
const userAgent = "francegen/1.0 (+https://github.com/defvs/francegen)"

// httpFetcher is the concrete Fetcher the CLI layer injects; netfetch's
// own types only ever see the Fetcher interface.
type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a Fetcher backed by net/http with a per-request
// timeout and a self-identifying User-Agent header.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &httpFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}
