// Package style resolves, for one world column, the biome/block stack
// described in spec §4.3 (style resolver) and §4.4 (slope/cliff analyzer).
package style

import (
	"sort"

	"github.com/defvs/francegen/internal/config"
)

// BlockID is a namespaced Minecraft block-state identifier, e.g.
// "minecraft:grass_block".
type BlockID string

// BiomeID is a namespaced Minecraft biome identifier, e.g. "minecraft:plains".
type BiomeID string

const (
	// AirBlock is the always-present palette[0] sentinel (spec §4.6 invariant).
	AirBlock BlockID = "minecraft:air"
)

// ExtrusionSpec describes a vertical block column placed above a surface.
type ExtrusionSpec struct {
	HeightBlocks uint16
	Block        BlockID
}

// ColumnStyle is the resolved per-column result (spec §3 "ColumnStyle").
type ColumnStyle struct {
	Biome           BiomeID
	TopBlock        BlockID
	TopThickness    uint8
	SubsurfaceBlock BlockID
	Extrusion       *ExtrusionSpec
}

// StylePatch carries any subset of column-style fields; only non-zero
// fields are applied when merged over an existing ColumnStyle (spec §3).
type StylePatch struct {
	SurfaceBlock    *BlockID
	SubsurfaceBlock *BlockID
	TopThickness    *uint8
	Biome           *BiomeID
	Extrusion       *ExtrusionSpec
}

// Apply merges patch's provided keys into cs, non-destructively.
func (cs *ColumnStyle) Apply(p StylePatch) {
	if p.SurfaceBlock != nil {
		cs.TopBlock = *p.SurfaceBlock
	}
	if p.SubsurfaceBlock != nil {
		cs.SubsurfaceBlock = *p.SubsurfaceBlock
	}
	if p.TopThickness != nil {
		cs.TopThickness = *p.TopThickness
	}
	if p.Biome != nil {
		cs.Biome = *p.Biome
	}
	if p.Extrusion != nil {
		cs.Extrusion = p.Extrusion
	}
}

// PassPriority orders overlay sources when layer_index ties: OSM directives
// sort before WMTS directives (spec §4.3 pass C, §5 ordering guarantee).
type PassPriority int

const (
	PassOSM PassPriority = iota
	PassWMTS
)

// PaintDirective is the common reduction of a vector or raster overlay hit
// (spec §3 "Overlay").
type PaintDirective struct {
	LayerIndex     int32
	Pass           PassPriority
	InsertionOrder uint32
	Patch          StylePatch
}

// SortDirectives orders directives by the total, deterministic sort key
// (layer_index ASC, pass ASC, insertion_order ASC) from spec §5.
func SortDirectives(ds []PaintDirective) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].LayerIndex != ds[j].LayerIndex {
			return ds[i].LayerIndex < ds[j].LayerIndex
		}
		if ds[i].Pass != ds[j].Pass {
			return ds[i].Pass < ds[j].Pass
		}
		return ds[i].InsertionOrder < ds[j].InsertionOrder
	})
}

// compiledBiomeLayer and compiledTopBlockLayer carry pre-parsed elevation
// ranges alongside the original config entry.
type compiledBiomeLayer struct {
	rng   ElevRange
	cfg   config.BiomeLayer
}

type compiledTopBlockLayer struct {
	rng ElevRange
	cfg config.TopBlockLayer
}

// Resolver applies spec §4.3's deterministic four-pass algorithm.
type Resolver struct {
	profile     config.StyleProfile
	biomeLayers []compiledBiomeLayer
	topLayers   []compiledTopBlockLayer
	analyzer    *CliffAnalyzer
}

// NewResolver compiles a StyleProfile's range strings once, for reuse
// across every column resolved during a run.
func NewResolver(profile config.StyleProfile, analyzer *CliffAnalyzer) (*Resolver, error) {
	r := &Resolver{profile: profile, analyzer: analyzer}
	for _, bl := range profile.BiomeLayers {
		rng, err := ParseRange(bl.Range.Min, bl.Range.Max)
		if err != nil {
			return nil, err
		}
		r.biomeLayers = append(r.biomeLayers, compiledBiomeLayer{rng: rng, cfg: bl})
	}
	for _, tl := range profile.TopBlockLayers {
		rng, err := ParseRange(tl.Range.Min, tl.Range.Max)
		if err != nil {
			return nil, err
		}
		r.topLayers = append(r.topLayers, compiledTopBlockLayer{rng: rng, cfg: tl})
	}
	return r, nil
}

// Resolve implements the four passes of spec §4.3 for a single column.
func (r *Resolver) Resolve(elevationM float64, cliff bool, directives []PaintDirective) ColumnStyle {
	cs := ColumnStyle{
		Biome:           BiomeID(r.profile.BaseBiome),
		TopBlock:        BlockID(r.profile.TopLayerBlock),
		TopThickness:    uint8(r.profile.TopLayerThickness),
		SubsurfaceBlock: BlockID(r.profile.BottomLayerBlock),
	}

	// Pass A: biome_layers, first match wins; track cliff override.
	var cliffBlockOverride *BlockID
	for _, bl := range r.biomeLayers {
		if bl.rng.Contains(elevationM) {
			cs.Biome = BiomeID(bl.cfg.Biome)
			if bl.cfg.CliffBlock != "" {
				b := BlockID(bl.cfg.CliffBlock)
				cliffBlockOverride = &b
			}
			break
		}
	}

	// Pass B: top_block_layers, first match wins.
	for _, tl := range r.topLayers {
		if tl.rng.Contains(elevationM) {
			cs.TopBlock = BlockID(tl.cfg.Block)
			break
		}
	}

	// Pass C: overlays, ascending (layer_index, pass, insertion_order) so
	// the lowest layer_index is applied last and wins on top.
	ordered := make([]PaintDirective, len(directives))
	copy(ordered, directives)
	SortDirectives(ordered)
	for i := len(ordered) - 1; i >= 0; i-- {
		cs.Apply(ordered[i].Patch)
	}

	// Cliff override: swap top_block only, thickness unchanged.
	if cliff {
		if cliffBlockOverride != nil {
			cs.TopBlock = *cliffBlockOverride
		} else {
			cs.TopBlock = BlockID(r.profile.CliffGeneration.Block)
		}
	}

	return cs
}
