// Package config loads and validates the francegen style-profile JSON
// configuration described in spec §3 ("StyleProfile (from config)") and §6.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// rangePattern matches a layer-range bound: a signed number followed by
// "m" (metres) or "b" (block units, converted via coordmap.VerticalShift).
var rangePattern = regexp.MustCompile(`^-?\d+(\.\d+)?[mb]$`)

// LayerRange is a single {min,max} entry shared by biome and top-block
// layer lists.
type LayerRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// BiomeLayer maps an elevation range to a biome, with optional per-layer
// cliff overrides (spec §4.3 pass A, §4.4 per-biome override).
type BiomeLayer struct {
	Range        LayerRange    `json:"range"`
	Biome        string        `json:"biome"`
	CliffBlock   string        `json:"cliff_block,omitempty"`
	CliffOverride *CliffSettings `json:"cliff_override,omitempty"`
}

// TopBlockLayer maps an elevation range to a top block (spec §4.3 pass B).
type TopBlockLayer struct {
	Range LayerRange `json:"range"`
	Block string     `json:"block"`
}

// CliffSettings configures the slope/cliff analyzer (spec §4.4).
type CliffSettings struct {
	AngleThresholdDegrees float64 `json:"angle_threshold_degrees"`
	SmoothingRadius       int     `json:"smoothing_radius"`
	SmoothingFactor       float64 `json:"smoothing_factor"`
	Block                 string  `json:"block"`
}

// WidthSource is one entry in a dynamic line-width source cascade
// (spec §4.5, §9 "source key cascade").
type WidthSource struct {
	Key        string  `json:"key"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// DynamicWidth resolves a line width from feature tags, falling back to
// Default when no source key is present.
type DynamicWidth struct {
	Default float64       `json:"default"`
	Min     float64       `json:"min"`
	Max     float64       `json:"max"`
	Sources []WidthSource `json:"sources,omitempty"`
}

// Extrusion describes a vertical block column placed above a surface.
type Extrusion struct {
	HeightM *float64 `json:"height_m,omitempty"`
	Block   string   `json:"block,omitempty"`
}

// OverlayStylePatch is the JSON form of a partial ColumnStyle override.
type OverlayStylePatch struct {
	SurfaceBlock    string     `json:"surface_block,omitempty"`
	SubsurfaceBlock string     `json:"subsurface_block,omitempty"`
	TopThickness    *int       `json:"top_thickness,omitempty"`
	Biome           string     `json:"biome,omitempty"`
	Extrusion       *Extrusion `json:"extrusion,omitempty"`
}

// OSMLayer is one overlay rule applied against Overpass geometry.
type OSMLayer struct {
	LayerIndex int               `json:"layer_index"`
	Geometry   string            `json:"geometry"` // "line" or "polygon"
	Tags       map[string]string `json:"tags,omitempty"`
	WidthM     *float64          `json:"width_m,omitempty"`
	Width      *DynamicWidth     `json:"width,omitempty"`
	Extrusion  *Extrusion        `json:"extrusion,omitempty"`
	Style      OverlayStylePatch `json:"style"`
}

// WMTSColorRule matches decoded pixels within tolerance of a target color.
type WMTSColorRule struct {
	Target         [3]uint8 `json:"target"`
	Tolerance      uint8    `json:"tolerance"`
	AlphaThreshold uint8    `json:"alpha_threshold,omitempty"`
	Space          string   `json:"space,omitempty"` // "rgb" (default) or "lab"
	LabTolerance   float64  `json:"lab_tolerance,omitempty"`
	Style          OverlayStylePatch `json:"style"`
}

// WMTSLayer configures a single raster overlay source.
type WMTSLayer struct {
	LayerIndex   int             `json:"layer_index"`
	CapabilitiesURL string       `json:"capabilities_url"`
	TileMatrix   string          `json:"tile_matrix"`
	MaxTiles     int             `json:"max_tiles"`
	Colors       []WMTSColorRule `json:"colors"`
}

// Overlays groups vector and raster overlay configuration.
type Overlays struct {
	OverpassURL string      `json:"overpass_url,omitempty"`
	BBoxMarginM float64     `json:"bbox_margin_m"`
	OSMLayers   []OSMLayer  `json:"osm_layers,omitempty"`
	WMTSLayers  []WMTSLayer `json:"wmts_layers,omitempty"`
}

// StyleProfile is the top-level, immutable configuration document
// (spec §3 "StyleProfile (from config)").
type StyleProfile struct {
	TopLayerBlock      string          `json:"top_layer_block"`
	TopLayerThickness  int             `json:"top_layer_thickness"`
	BottomLayerBlock   string          `json:"bottom_layer_block"`
	BaseBiome          string          `json:"base_biome"`
	CliffGeneration    CliffSettings   `json:"cliff_generation"`
	BiomeLayers        []BiomeLayer    `json:"biome_layers,omitempty"`
	TopBlockLayers     []TopBlockLayer `json:"top_block_layers,omitempty"`
	GenerateFeatures   bool            `json:"generate_features"`
	EmptyChunkRadius   uint32          `json:"empty_chunk_radius"`
	DataVersion        int             `json:"data_version"`
	Overlays           Overlays        `json:"overlays"`
}

// Default returns a StyleProfile with the spec's stated defaults.
func Default() StyleProfile {
	return StyleProfile{
		TopLayerBlock:     "minecraft:grass_block",
		TopLayerThickness: 1,
		BottomLayerBlock:  "minecraft:stone",
		BaseBiome:         "minecraft:plains",
		CliffGeneration: CliffSettings{
			AngleThresholdDegrees: 45,
			SmoothingRadius:       1,
			SmoothingFactor:       0,
			Block:                 "minecraft:stone",
		},
		GenerateFeatures: false,
		EmptyChunkRadius: 32,
		// 3955 is the DataVersion for Minecraft 1.21.10.
		DataVersion: 3955,
	}
}

// Load decodes and validates a StyleProfile from JSON bytes. Unknown keys
// are rejected per spec §6.
func Load(data []byte) (StyleProfile, error) {
	p := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return StyleProfile{}, fmt.Errorf("config: schema error: %w", err)
	}
	if err := p.Validate(); err != nil {
		return StyleProfile{}, err
	}
	return p, nil
}

// Validate checks cross-field invariants the JSON schema itself cannot express.
func (p StyleProfile) Validate() error {
	if p.TopLayerThickness < 1 {
		return fmt.Errorf("config: top_layer_thickness must be >= 1, got %d", p.TopLayerThickness)
	}
	for _, bl := range p.BiomeLayers {
		if err := validateRange(bl.Range); err != nil {
			return fmt.Errorf("config: biome_layers: %w", err)
		}
	}
	for _, tl := range p.TopBlockLayers {
		if err := validateRange(tl.Range); err != nil {
			return fmt.Errorf("config: top_block_layers: %w", err)
		}
	}
	return nil
}

func validateRange(r LayerRange) error {
	if !rangePattern.MatchString(r.Min) {
		return fmt.Errorf("invalid range min %q", r.Min)
	}
	if !rangePattern.MatchString(r.Max) {
		return fmt.Errorf("invalid range max %q", r.Max)
	}
	return nil
}
