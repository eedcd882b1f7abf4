// Package overlay rasterizes OSM vector features and WMTS raster tiles
// into per-column PaintDirectives, implementing spec §4.5.
package overlay

import (
	"sync"

	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/style"
)

// Index is the immutable overlay index of spec §9 "Overlay ownership":
// materialized once during S4, then shared read-only across the S5
// chunk-building workers. Directives are bucketed per chunk so a chunk
// builder only ever touches the slice for its own 16x16 footprint.
type Index struct {
	mu      sync.Mutex // guards buckets only while the index is being built
	buckets map[[2]int]map[[2]int][]style.PaintDirective
	frozen  bool
}

// NewIndex returns an empty, writable Index.
func NewIndex() *Index {
	return &Index{buckets: make(map[[2]int]map[[2]int][]style.PaintDirective)}
}

// Add records a directive for world column (x, z). Safe for concurrent
// use while building; callers must stop calling Add before handing the
// Index to chunk builders (DirectivesAt performs no locking).
func (idx *Index) Add(x, z int, d style.PaintDirective) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	ck := [2]int{coordmap.FloorDiv(x, 16), coordmap.FloorDiv(z, 16)}
	bucket, ok := idx.buckets[ck]
	if !ok {
		bucket = make(map[[2]int][]style.PaintDirective)
		idx.buckets[ck] = bucket
	}
	bucket[[2]int{x, z}] = append(bucket[[2]int{x, z}], d)
}

// DirectivesAt returns the directives painted onto world column (x, z), in
// insertion order. Implements anvil.OverlayIndex.
func (idx *Index) DirectivesAt(x, z int) []style.PaintDirective {
	bucket, ok := idx.buckets[[2]int{coordmap.FloorDiv(x, 16), coordmap.FloorDiv(z, 16)}]
	if !ok {
		return nil
	}
	return bucket[[2]int{x, z}]
}
