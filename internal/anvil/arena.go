package anvil

import "github.com/defvs/francegen/internal/style"

// Arena holds BuildChunk's per-call scratch buffers so a worker that
// builds many chunks in sequence can reuse one allocation instead of
// paying for 256 columnFills and a 4096-block section buffer on every
// call. Not safe for concurrent use: one Arena per worker goroutine.
type Arena struct {
	fills          []columnFill
	blockBuf       []style.BlockID
	motionBlocking []int
	worldSurface   []int
}

// NewArena allocates a ready-to-use Arena.
func NewArena() *Arena {
	return &Arena{
		fills:          make([]columnFill, 256),
		blockBuf:       make([]style.BlockID, 16*16*16),
		motionBlocking: make([]int, 256),
		worldSurface:   make([]int, 256),
	}
}
