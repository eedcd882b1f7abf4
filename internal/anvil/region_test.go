package anvil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/defvs/francegen/internal/style"
)

func flatChunk(cx, cz int) Chunk {
	blocks := []style.BlockID{"minecraft:stone", style.AirBlock}
	palette, indices := buildPalette(blocks)
	data := PackLongArray(indices, BitsPerEntry(len(palette)))
	states := make([]blockStateNBT, len(palette))
	for i, p := range palette {
		states[i] = blockStateNBT{Name: string(p.Name)}
	}
	return Chunk{
		CX: cx,
		CZ: cz,
		NBT: chunkNBT{
			DataVersion: 3955,
			XPos:        int32(cx),
			ZPos:        int32(cz),
			YPos:        -4,
			Status:      "minecraft:full",
			Sections: []sectionNBT{{
				Y:           -128,
				BlockStates: blockStatesNBT{Palette: states, Data: data},
				Biomes:      biomesNBT{Palette: []string{"minecraft:plains"}},
			}},
			BlockEntities:  []map[string]any{},
			FluidTicks:     []map[string]any{},
			BlockTicks:     []map[string]any{},
			PostProcessing: [][]int16{},
			Structures:     map[string]any{},
		},
	}
}

// TestRegionLayoutInvariant implements spec §8 property 6 for a small
// region: 8KiB header, every sector range inside the file, no overlap,
// empty slots zeroed.
func TestRegionLayoutInvariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "region", "r.0.0.mca")
	chunks := []Chunk{flatChunk(0, 0), flatChunk(1, 0), flatChunk(0, 1)}

	if err := WriteRegion(path, chunks); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 2*sectorSize {
		t.Fatalf("file too short for header: %d bytes", len(data))
	}
	if len(data)%sectorSize != 0 {
		t.Errorf("file length %d is not sector-aligned", len(data))
	}

	type span struct{ start, end int }
	var spans []span
	populated := 0
	for slot := 0; slot < 1024; slot++ {
		word := binary.BigEndian.Uint32(data[slot*4 : slot*4+4])
		if word == 0 {
			continue
		}
		populated++
		sectorOffset := int(word >> 8)
		sectorCount := int(word & 0xff)
		if sectorCount == 0 {
			t.Fatalf("slot %d: non-zero entry with zero sector count", slot)
		}
		start := sectorOffset * sectorSize
		end := start + sectorCount*sectorSize
		if end > len(data) {
			t.Fatalf("slot %d: sector range [%d,%d) exceeds file length %d", slot, start, end, len(data))
		}
		spans = append(spans, span{start, end})
	}
	if populated != len(chunks) {
		t.Errorf("expected %d populated slots, got %d", len(chunks), populated)
	}

	for i := range spans {
		for j := range spans {
			if i == j {
				continue
			}
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				t.Fatalf("overlapping sector spans: %+v and %+v", spans[i], spans[j])
			}
		}
	}

	for slot := 0; slot < 1024; slot++ {
		ts := binary.BigEndian.Uint32(data[sectorSize+slot*4 : sectorSize+slot*4+4])
		if ts != 0 {
			t.Fatalf("slot %d: expected zero timestamp for reproducibility, got %d", slot, ts)
		}
	}
}

func TestWriteRegionAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "region", "r.0.0.mca")
	if err := WriteRegion(path, []Chunk{flatChunk(0, 0)}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("expected temp file to be removed after rename, stat err = %v", err)
	}
}
