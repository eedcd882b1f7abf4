package anvil

import (
	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/style"
)

// sectionHeight is the vertical extent of one Anvil section.
const sectionHeight = 16

// heightmapBits is the bits-per-entry vanilla uses for the MOTION_BLOCKING
// and WORLD_SURFACE heightmaps: the smallest width that can hold every
// value in [0, MaxY-MinY+1] (the extended height range here needs 12, vs.
// vanilla's 9 for the stock -64..320 world).
var heightmapBits = func() int {
	maxVal := coordmap.MaxY - coordmap.MinY + 1
	bits := 1
	for (1 << bits) <= maxVal {
		bits++
	}
	return bits
}()

// OverlayIndex resolves the paint directives touching a world column,
// materialized once per run and shared read-only across chunk builders
// (spec §9 "Overlay ownership").
type OverlayIndex interface {
	DirectivesAt(worldX, worldZ int) []style.PaintDirective
}

// ElevationSource is the subset of the mosaic a chunk builder needs: the
// elevation in metres at a world column, or NaN where there is no data.
type ElevationSource interface {
	ElevationAt(x, z int) float64
}

// Chunk is the fully resolved in-memory form of one 16x16-column chunk,
// ready for NBT encoding (spec §4.6).
type Chunk struct {
	CX, CZ int
	NBT    chunkNBT
}

// chunkNBT mirrors the vanilla Anvil 1.21 chunk compound (spec §4.6 step 5).
type chunkNBT struct {
	DataVersion  int32          `nbt:"DataVersion"`
	XPos         int32          `nbt:"xPos"`
	ZPos         int32          `nbt:"zPos"`
	YPos         int32          `nbt:"yPos"`
	Status       string         `nbt:"Status"`
	IsLightOn    byte           `nbt:"isLightOn"`
	Sections     []sectionNBT   `nbt:"sections"`
	Heightmaps   heightmapsNBT  `nbt:"Heightmaps"`
	BlockEntities []map[string]any `nbt:"block_entities"`
	FluidTicks   []map[string]any  `nbt:"fluid_ticks"`
	BlockTicks   []map[string]any  `nbt:"block_ticks"`
	PostProcessing [][]int16       `nbt:"PostProcessing"`
	Structures   map[string]any    `nbt:"structures"`
}

type sectionNBT struct {
	Y            int8              `nbt:"Y"`
	BlockStates  blockStatesNBT    `nbt:"block_states"`
	Biomes       biomesNBT         `nbt:"biomes"`
}

type blockStatesNBT struct {
	Palette []blockStateNBT `nbt:"palette"`
	Data    []int64         `nbt:"data,omitempty,array"`
}

type blockStateNBT struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

type biomesNBT struct {
	Palette []string `nbt:"palette"`
	Data    []int64  `nbt:"data,omitempty,array"`
}

type heightmapsNBT struct {
	MotionBlocking []int64 `nbt:"MOTION_BLOCKING,array"`
	WorldSurface   []int64 `nbt:"WORLD_SURFACE,array"`
}

// BuildParams carries the per-run constants BuildChunk needs beyond the
// resolved per-column styles, so callers can reuse one Resolver/Analyzer
// pair across every chunk in a run.
type BuildParams struct {
	DataVersion      int32
	GenerateFeatures bool
}

// columnFill is the resolved block stack for one column, reduced to the
// three Y thresholds BuildChunk needs to fill a section without
// re-deriving them per section.
type columnFill struct {
	biome           style.BiomeID
	surfaceY        int
	hasSurface      bool // false when the column is NaN (full air)
	topThickness    int
	topBlock        style.BlockID
	subsurfaceBlock style.BlockID
	extrusionTop    int // surfaceY + extrusion height; equals surfaceY if none
	extrusionBlock  style.BlockID
}

// BuildChunk assembles one chunk's NBT compound per spec §4.6. elevation
// supplies per-column metres; resolver and analyzer were built once for
// the whole run; overlays supplies the immutable overlay index. arena may
// be nil (fresh buffers are allocated) or a per-worker Arena reused across
// every chunk that worker builds.
func BuildChunk(cx, cz int, elevation ElevationSource, resolver *style.Resolver, analyzer *style.CliffAnalyzer, overlays OverlayIndex, params BuildParams, arena *Arena) Chunk {
	baseX, baseZ := cx*16, cz*16

	var fills []columnFill
	if arena != nil {
		fills = arena.fills
	} else {
		fills = make([]columnFill, 256)
	}
	for lz := 0; lz < 16; lz++ {
		for lx := 0; lx < 16; lx++ {
			wx, wz := baseX+lx, baseZ+lz
			idx := lz*16 + lx
			elev := elevation.ElevationAt(wx, wz)
			if isNaNf(elev) {
				fills[idx] = columnFill{biome: style.BiomeID("minecraft:plains")}
				continue
			}

			var directives []style.PaintDirective
			if overlays != nil {
				directives = overlays.DirectivesAt(wx, wz)
			}
			cs := resolver.Resolve(elev, false, directives)
			if analyzer != nil && analyzer.IsCliff(wx, wz, elev, cs.Biome) {
				cs = resolver.Resolve(elev, true, directives)
			}

			surfaceY := coordmap.HeightToY(elev)
			extrusionTop := surfaceY
			extrusionBlock := style.BlockID("")
			if cs.Extrusion != nil && cs.Extrusion.HeightBlocks > 0 {
				extrusionTop = surfaceY + int(cs.Extrusion.HeightBlocks)
				extrusionBlock = cs.Extrusion.Block
			}

			fills[idx] = columnFill{
				biome:           cs.Biome,
				surfaceY:        surfaceY,
				hasSurface:      true,
				topThickness:    int(cs.TopThickness),
				topBlock:        cs.TopBlock,
				subsurfaceBlock: cs.SubsurfaceBlock,
				extrusionTop:    extrusionTop,
				extrusionBlock:  extrusionBlock,
			}
		}
	}

	minSectionY := coordmap.FloorDiv(coordmap.MinY, sectionHeight)
	maxSectionY := coordmap.FloorDiv(coordmap.MaxY, sectionHeight)

	var sections []sectionNBT
	var motionBlocking, worldSurface []int
	if arena != nil {
		motionBlocking = arena.motionBlocking
		worldSurface = arena.worldSurface
	} else {
		motionBlocking = make([]int, 256)
		worldSurface = make([]int, 256)
	}
	for i := range motionBlocking {
		motionBlocking[i] = 0
		worldSurface[i] = 0
	}
	for i := range fills {
		if fills[i].hasSurface {
			motionBlocking[i] = fills[i].extrusionTop + 1 - coordmap.MinY
			worldSurface[i] = fills[i].surfaceY + 1 - coordmap.MinY
		}
	}

	for sy := minSectionY; sy <= maxSectionY; sy++ {
		sectionBaseY := sy * sectionHeight
		var blocks []style.BlockID
		if arena != nil {
			blocks = arena.blockBuf
		} else {
			blocks = make([]style.BlockID, 16*16*16)
		}
		anyNonAir := false
		for ly := 0; ly < 16; ly++ {
			wy := sectionBaseY + ly
			for lz := 0; lz < 16; lz++ {
				for lx := 0; lx < 16; lx++ {
					col := &fills[lz*16+lx]
					b := columnBlockAt(col, wy)
					if b != style.AirBlock {
						anyNonAir = true
					}
					blocks[ly*256+lz*16+lx] = b
				}
			}
		}
		if !anyNonAir {
			continue
		}

		palette, indices := buildPalette(blocks)
		bpe := BitsPerEntry(len(palette))
		states := make([]blockStateNBT, len(palette))
		for i, p := range palette {
			states[i] = blockStateNBT{Name: string(p.Name)}
		}

		biomeIDs := make([]style.BiomeID, 4*4*4)
		for by := 0; by < 4; by++ {
			for bz := 0; bz < 4; bz++ {
				for bx := 0; bx < 4; bx++ {
					lx, lz := bx*4, bz*4
					biomeIDs[by*16+bz*4+bx] = fills[lz*16+lx].biome
				}
			}
		}
		biomePalette, biomeIndices := buildBiomePalette(biomeIDs)
		biomeBpe := BitsPerEntry(len(biomePalette))
		biomeNames := make([]string, len(biomePalette))
		for i, b := range biomePalette {
			biomeNames[i] = string(b)
		}

		sections = append(sections, sectionNBT{
			Y: int8(sy),
			BlockStates: blockStatesNBT{
				Palette: states,
				Data:    packIfMultiple(indices, bpe, len(palette)),
			},
			Biomes: biomesNBT{
				Palette: biomeNames,
				Data:    packIfMultiple(biomeIndices, biomeBpe, len(biomePalette)),
			},
		})
	}

	status := "minecraft:full"
	if params.GenerateFeatures {
		status = "minecraft:liquid_carvers"
	}

	return Chunk{
		CX: cx,
		CZ: cz,
		NBT: chunkNBT{
			DataVersion: params.DataVersion,
			XPos:        int32(cx),
			ZPos:        int32(cz),
			YPos:        -4,
			Status:      status,
			IsLightOn:   0,
			Sections:    sections,
			Heightmaps: heightmapsNBT{
				MotionBlocking: PackLongArray(motionBlocking, heightmapBits),
				WorldSurface:   PackLongArray(worldSurface, heightmapBits),
			},
			BlockEntities:  []map[string]any{},
			FluidTicks:     []map[string]any{},
			BlockTicks:     []map[string]any{},
			PostProcessing: [][]int16{},
			Structures:     map[string]any{},
		},
	}
}

// columnBlockAt applies spec §4.6 step 2's Y-range rules for one column.
func columnBlockAt(col *columnFill, wy int) style.BlockID {
	if !col.hasSurface {
		return style.AirBlock
	}
	switch {
	case wy > col.surfaceY:
		if wy <= col.extrusionTop && col.extrusionBlock != "" {
			return col.extrusionBlock
		}
		return style.AirBlock
	case wy > col.surfaceY-col.topThickness:
		return col.topBlock
	default:
		return col.subsurfaceBlock
	}
}

// buildBiomePalette is buildPalette's counterpart for biome ids: no air
// sentinel to bubble to the front, so a plain first-seen order suffices.
func buildBiomePalette(biomes []style.BiomeID) ([]style.BiomeID, []int) {
	order := make([]style.BiomeID, 0, 4)
	seen := make(map[style.BiomeID]int, 4)
	indices := make([]int, len(biomes))
	for i, b := range biomes {
		idx, ok := seen[b]
		if !ok {
			idx = len(order)
			order = append(order, b)
			seen[b] = idx
		}
		indices[i] = idx
	}
	return order, indices
}

// packIfMultiple returns nil (omitted via ,omitempty) when the palette has
// exactly one entry, matching vanilla's single-value-palette convention of
// carrying no packed data array.
func packIfMultiple(indices []int, bpe, paletteLen int) []int64 {
	if paletteLen <= 1 {
		return nil
	}
	return PackLongArray(indices, bpe)
}

func isNaNf(f float64) bool {
	return f != f
}
