package anvil

import (
	"testing"

	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/style"
)

type flatElevation float64

func (f flatElevation) ElevationAt(x, z int) float64 { return float64(f) }

func newTestResolver(t *testing.T) *style.Resolver {
	t.Helper()
	r, err := style.NewResolver(config.Default(), nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

// TestBuildChunkFlatColumn implements spec §8 scenario S1: a flat 100m
// elevation chunk should have air above the surface Y, the default top
// block at the surface, and the default subsurface block below it.
func TestBuildChunkFlatColumn(t *testing.T) {
	resolver := newTestResolver(t)
	chunk := BuildChunk(0, 0, flatElevation(100), resolver, nil, nil, BuildParams{DataVersion: 3700}, nil)

	if chunk.CX != 0 || chunk.CZ != 0 {
		t.Fatalf("unexpected chunk coords: %+v", chunk)
	}
	if chunk.NBT.XPos != 0 || chunk.NBT.ZPos != 0 || chunk.NBT.YPos != -4 {
		t.Fatalf("unexpected NBT position fields: %+v", chunk.NBT)
	}

	surfaceY := coordmap.HeightToY(100)
	if surfaceY != -1948 {
		t.Fatalf("sanity check failed: HeightToY(100) = %d, want -1948", surfaceY)
	}

	surfaceBlock, ok := blockAt(t, chunk, surfaceY)
	if !ok || surfaceBlock != "minecraft:grass_block" {
		t.Errorf("expected grass_block at surface Y=%d, got %q (found=%v)", surfaceY, surfaceBlock, ok)
	}
	belowBlock, ok := blockAt(t, chunk, surfaceY-1)
	if !ok || belowBlock != "minecraft:stone" {
		t.Errorf("expected stone below surface, got %q (found=%v)", belowBlock, ok)
	}
	aboveBlock, ok := blockAt(t, chunk, surfaceY+1)
	if ok && aboveBlock != "minecraft:air" {
		t.Errorf("expected air above surface, got %q", aboveBlock)
	}
}

func TestBuildChunkOmitsAllAirSections(t *testing.T) {
	resolver := newTestResolver(t)
	// An elevation far below every section built keeps most sections all-air;
	// only sections actually straddling the surface should be emitted.
	chunk := BuildChunk(5, 5, flatElevation(100), resolver, nil, nil, BuildParams{DataVersion: 3700}, nil)
	for _, s := range chunk.NBT.Sections {
		found := false
		for _, p := range s.BlockStates.Palette {
			if p.Name != "minecraft:air" {
				found = true
			}
		}
		if !found {
			t.Errorf("section Y=%d has only air in its palette, should have been omitted", s.Y)
		}
	}
}

func TestBuildChunkReusesArenaAcrossCalls(t *testing.T) {
	resolver := newTestResolver(t)
	arena := NewArena()
	c1 := BuildChunk(0, 0, flatElevation(50), resolver, nil, nil, BuildParams{DataVersion: 3700}, arena)
	c2 := BuildChunk(1, 0, flatElevation(200), resolver, nil, nil, BuildParams{DataVersion: 3700}, arena)

	if c1.CX == c2.CX && c1.CZ == c2.CZ {
		t.Fatal("expected distinct chunk coordinates")
	}
	s1, ok1 := blockAt(t, c1, coordmap.HeightToY(50))
	s2, ok2 := blockAt(t, c2, coordmap.HeightToY(200))
	if !ok1 || s1 != "minecraft:grass_block" {
		t.Errorf("chunk 1 surface wrong after arena reuse: %q", s1)
	}
	if !ok2 || s2 != "minecraft:grass_block" {
		t.Errorf("chunk 2 surface wrong after arena reuse: %q", s2)
	}
}

// blockAt looks up the palette-resolved block name at world column (0,0)
// within chunk for world Y y; ok is false if no section covers y.
func blockAt(t *testing.T, chunk Chunk, y int) (string, bool) {
	t.Helper()
	sy := coordmap.FloorDiv(y, sectionHeight)
	for _, s := range chunk.NBT.Sections {
		if int(s.Y) != sy {
			continue
		}
		ly := y - sy*sectionHeight
		bpe := BitsPerEntry(len(s.BlockStates.Palette))
		if len(s.BlockStates.Palette) <= 1 {
			return string(s.BlockStates.Palette[0].Name), true
		}
		idx := 0 // column (0,0) at local (lx=0,lz=0)
		indices := UnpackLongArray(s.BlockStates.Data, bpe, 4096)
		paletteIdx := indices[ly*256+idx]
		return string(s.BlockStates.Palette[paletteIdx].Name), true
	}
	return "", false
}
