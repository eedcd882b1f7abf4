package anvil

// BitsPerEntry returns the number of bits used to pack one palette index,
// per spec §4.6: never fewer than 4, never more than 15.
func BitsPerEntry(paletteLen int) int {
	bpe := 4
	for (1 << bpe) < paletteLen {
		bpe++
	}
	return bpe
}

// PackLongArray packs indices into big-endian-ordered int64 "longs" using
// the post-1.16 Anvil convention: a palette index never straddles a long
// boundary (spec §9 "Bit-packing precision"). Each long holds
// floor(64/bpe) entries; any leftover high bits in the final portion of
// each long are zero.
//
// This differs from the literal ceil(len*bpe/64) formula spec §9 also
// states for a dense, straddling pack — the two formulas only agree when
// bpe evenly divides 64 (true for bpe=4,8,16,32 but not e.g. 5,6,7). Vanilla
// Minecraft 1.16+ never straddles, so that is the behavior implemented
// here; see DESIGN.md.
func PackLongArray(indices []int, bpe int) []int64 {
	if len(indices) == 0 {
		return nil
	}
	valuesPerLong := 64 / bpe
	numLongs := (len(indices) + valuesPerLong - 1) / valuesPerLong
	longs := make([]int64, numLongs)
	mask := int64(1)<<uint(bpe) - 1

	for i, v := range indices {
		longIdx := i / valuesPerLong
		bitOffset := uint(i%valuesPerLong) * uint(bpe)
		longs[longIdx] |= (int64(v) & mask) << bitOffset
	}
	return longs
}

// UnpackLongArray reverses PackLongArray, returning count indices.
func UnpackLongArray(longs []int64, bpe int, count int) []int {
	if count == 0 {
		return nil
	}
	valuesPerLong := 64 / bpe
	mask := int64(1)<<uint(bpe) - 1
	out := make([]int, count)
	for i := 0; i < count; i++ {
		longIdx := i / valuesPerLong
		bitOffset := uint(i%valuesPerLong) * uint(bpe)
		out[i] = int((longs[longIdx] >> bitOffset) & mask)
	}
	return out
}

// LongArrayLen returns ceil(count / floor(64/bpe)), the number of longs
// PackLongArray produces for count entries at bpe bits each.
func LongArrayLen(count, bpe int) int {
	valuesPerLong := 64 / bpe
	return (count + valuesPerLong - 1) / valuesPerLong
}
