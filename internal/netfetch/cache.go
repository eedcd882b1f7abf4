package netfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// cachingFetcher wraps inner with an on-disk cache under
// <cacheDir>/<subdir>/, keyed by the SHA-256 of the URL. Entries are
// written tmp-then-rename so a crash mid-fetch never leaves a partial
// file behind for a later run to pick up (spec §9 cache-layout note).
type cachingFetcher struct {
	inner    Fetcher
	cacheDir string
	subdir   string
}

// WithCache wraps inner so successful fetches are cached at
// <cacheDir>/<subdir>/<sha256(url)> and replayed on subsequent calls.
func WithCache(inner Fetcher, cacheDir, subdir string) Fetcher {
	return &cachingFetcher{inner: inner, cacheDir: cacheDir, subdir: subdir}
}

// OverpassCacheDir is the conventional subdirectory name for cached
// Overpass API responses.
const OverpassCacheDir = "overpass"

// TilesCacheDir is the conventional subdirectory name for cached WMTS
// tile images.
const TilesCacheDir = "tiles"

func (c *cachingFetcher) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.cacheDir, c.subdir, hex.EncodeToString(sum[:]))
}

func (c *cachingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	p := c.path(url)
	if data, err := os.ReadFile(p); err == nil {
		return data, nil
	}

	data, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.write(p, data); err != nil {
		return nil, fmt.Errorf("netfetch: cache write %s: %w", p, err)
	}
	return data, nil
}

func (c *cachingFetcher) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
