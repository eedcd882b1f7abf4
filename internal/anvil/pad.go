package anvil

// PadChunkSet expands the generated chunk set by radius chunks on every
// side and returns the additional (cx, cz) positions that need an
// air-only placeholder chunk, per spec §4.7 "empty-chunk padding". radius
// is interpreted in chunks (resolved Open Question, see DESIGN.md).
func PadChunkSet(generated map[[2]int]bool, radius int) [][2]int {
	if radius <= 0 {
		return nil
	}

	var padded [][2]int
	seen := make(map[[2]int]bool, len(generated))
	for k := range generated {
		seen[k] = true
	}

	for pos := range generated {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx == 0 && dz == 0 {
					continue
				}
				cand := [2]int{pos[0] + dx, pos[1] + dz}
				if seen[cand] {
					continue
				}
				seen[cand] = true
				padded = append(padded, cand)
			}
		}
	}
	return padded
}

// EmptyChunk builds an air-only placeholder chunk at (cx, cz). Its Status
// is always "minecraft:full" regardless of generate_features, so vanilla
// world generation never attempts to backfill it (spec §4.7).
func EmptyChunk(cx, cz int, dataVersion int32) Chunk {
	return Chunk{
		CX: cx,
		CZ: cz,
		NBT: chunkNBT{
			DataVersion:    dataVersion,
			XPos:           int32(cx),
			ZPos:           int32(cz),
			YPos:           -4,
			Status:         "minecraft:full",
			IsLightOn:      0,
			Sections:       nil,
			Heightmaps: heightmapsNBT{
				MotionBlocking: PackLongArray(make([]int, 256), heightmapBits),
				WorldSurface:   PackLongArray(make([]int, 256), heightmapBits),
			},
			BlockEntities:  []map[string]any{},
			FluidTicks:     []map[string]any{},
			BlockTicks:     []map[string]any{},
			PostProcessing: [][]int16{},
			Structures:     map[string]any{},
		},
	}
}
