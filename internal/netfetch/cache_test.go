package netfetch

import (
	"context"
	"testing"
)

func TestWithCacheWritesAndReplaysWithoutRefetch(t *testing.T) {
	dir := t.TempDir()
	inner := &countingFetcher{failures: 0}
	f := WithCache(inner, dir, OverpassCacheDir)

	data1, err := f.Fetch(context.Background(), "http://example/a")
	if err != nil {
		t.Fatal(err)
	}
	data2, err := f.Fetch(context.Background(), "http://example/a")
	if err != nil {
		t.Fatal(err)
	}
	if string(data1) != string(data2) {
		t.Errorf("cached fetch returned different bytes: %q vs %q", data1, data2)
	}
	if inner.calls != 1 {
		t.Errorf("expected inner fetcher called exactly once, got %d", inner.calls)
	}
}

func TestWithCacheDistinctURLsDistinctEntries(t *testing.T) {
	dir := t.TempDir()
	inner := &countingFetcher{}
	f := WithCache(inner, dir, TilesCacheDir)

	if _, err := f.Fetch(context.Background(), "http://example/a"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Fetch(context.Background(), "http://example/b"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 calls for 2 distinct URLs, got %d", inner.calls)
	}
}
