// Package worker fans chunk-build jobs out across a worker pool, giving
// each worker its own anvil.Arena so scratch buffers are reused across
// every chunk that worker builds rather than reallocated per call.
package worker

import (
	"sync"

	"github.com/defvs/francegen/internal/anvil"
	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/style"
)

// ChunkJob identifies one chunk to build.
type ChunkJob struct {
	CX, CZ int
}

// Config carries the run-wide, read-only collaborators every worker shares.
type Config struct {
	Concurrency int
	Elevation   anvil.ElevationSource
	Resolver    *style.Resolver
	Analyzer    *style.CliffAnalyzer
	Overlays    anvil.OverlayIndex
	Params      anvil.BuildParams

	// OnChunkBuilt, if set, is called once per completed chunk (e.g. to
	// drive a progress bar). Called concurrently from worker goroutines.
	OnChunkBuilt func()
}

// BuildChunks runs jobs across cfg.Concurrency workers, each with its own
// anvil.Arena, and returns one anvil.Chunk per job in the same order as
// jobs (so the caller's region grouping stays deterministic regardless of
// goroutine scheduling — spec §8 property 2).
func BuildChunks(jobs []ChunkJob, cfg Config) []anvil.Chunk {
	results := make([]anvil.Chunk, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	indices := make(chan int, len(jobs))
	for i := range jobs {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			arena := anvil.NewArena()
			for i := range indices {
				job := jobs[i]
				results[i] = anvil.BuildChunk(job.CX, job.CZ, cfg.Elevation, cfg.Resolver, cfg.Analyzer, cfg.Overlays, cfg.Params, arena)
				if cfg.OnChunkBuilt != nil {
					cfg.OnChunkBuilt()
				}
			}
		}()
	}
	wg.Wait()
	return results
}

// GroupByRegion partitions chunks into per-region buckets keyed by region
// coordinate, for anvil.WriteRegion to consume one region at a time.
func GroupByRegion(chunks []anvil.Chunk) map[[2]int][]anvil.Chunk {
	byRegion := make(map[[2]int][]anvil.Chunk)
	for _, c := range chunks {
		rx, rz := coordmap.ChunkToRegion(c.CX, c.CZ)
		key := [2]int{rx, rz}
		byRegion[key] = append(byRegion[key], c)
	}
	return byRegion
}
