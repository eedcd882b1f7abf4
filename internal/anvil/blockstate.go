package anvil

import "github.com/defvs/francegen/internal/style"

// BlockState is a palette entry: a block id plus optional variant
// properties (francegen never sets properties — every block used here is
// a plain id — but the field exists so the NBT shape matches vanilla
// section palettes exactly).
type BlockState struct {
	Name       style.BlockID
	Properties map[string]string
}

// buildPalette assigns small integer indices to the unique values in
// blocks, in first-seen order, then — if minecraft:air is present and not
// already first — swaps it into index 0 and remaps every index
// accordingly (spec §4.6 invariant: "palette[0] is always minecraft:air
// if present"). Returns the ordered palette and one index per input block.
func buildPalette(blocks []style.BlockID) ([]BlockState, []int) {
	order := make([]style.BlockID, 0, 16)
	seen := make(map[style.BlockID]int, 16)
	indices := make([]int, len(blocks))
	for i, b := range blocks {
		idx, ok := seen[b]
		if !ok {
			idx = len(order)
			order = append(order, b)
			seen[b] = idx
		}
		indices[i] = idx
	}

	if airIdx, ok := seen[style.AirBlock]; ok && airIdx != 0 {
		order[0], order[airIdx] = order[airIdx], order[0]
		for i, idx := range indices {
			switch idx {
			case 0:
				indices[i] = airIdx
			case airIdx:
				indices[i] = 0
			}
		}
	}

	states := make([]BlockState, len(order))
	for i, b := range order {
		states[i] = BlockState{Name: b}
	}
	return states, indices
}
