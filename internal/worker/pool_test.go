package worker

import (
	"sync/atomic"
	"testing"

	"github.com/defvs/francegen/internal/anvil"
	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/style"
)

type flatElevation float64

func (f flatElevation) ElevationAt(x, z int) float64 { return float64(f) }

func testResolver(t *testing.T) *style.Resolver {
	t.Helper()
	r, err := style.NewResolver(config.Default(), nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestBuildChunksPreservesOrderAndCount(t *testing.T) {
	resolver := testResolver(t)
	jobs := []ChunkJob{{CX: 0, CZ: 0}, {CX: 1, CZ: 0}, {CX: 0, CZ: 1}, {CX: -1, CZ: -1}}

	var built atomic.Int64
	cfg := Config{
		Concurrency: 2,
		Elevation:   flatElevation(100),
		Resolver:    resolver,
		Params:      anvil.BuildParams{DataVersion: 3700},
		OnChunkBuilt: func() { built.Add(1) },
	}

	chunks := BuildChunks(jobs, cfg)
	if len(chunks) != len(jobs) {
		t.Fatalf("expected %d chunks, got %d", len(jobs), len(chunks))
	}
	for i, job := range jobs {
		if chunks[i].CX != job.CX || chunks[i].CZ != job.CZ {
			t.Errorf("result %d: got (%d,%d), want (%d,%d)", i, chunks[i].CX, chunks[i].CZ, job.CX, job.CZ)
		}
	}
	if built.Load() != int64(len(jobs)) {
		t.Errorf("expected %d OnChunkBuilt calls, got %d", len(jobs), built.Load())
	}
}

func TestBuildChunksEmpty(t *testing.T) {
	if got := BuildChunks(nil, Config{Concurrency: 4}); len(got) != 0 {
		t.Errorf("expected no chunks, got %d", len(got))
	}
}

func TestGroupByRegionBucketsCorrectly(t *testing.T) {
	chunks := []anvil.Chunk{{CX: 0, CZ: 0}, {CX: 31, CZ: 0}, {CX: 32, CZ: 0}, {CX: -1, CZ: -1}}
	groups := GroupByRegion(chunks)
	if len(groups) != 3 {
		t.Fatalf("expected 3 region buckets, got %d: %+v", len(groups), groups)
	}
	if len(groups[[2]int{0, 0}]) != 2 {
		t.Errorf("expected 2 chunks in region (0,0), got %d", len(groups[[2]int{0, 0}]))
	}
	if len(groups[[2]int{1, 0}]) != 1 {
		t.Errorf("expected 1 chunk in region (1,0)")
	}
	if len(groups[[2]int{-1, -1}]) != 1 {
		t.Errorf("expected 1 chunk in region (-1,-1)")
	}
}
