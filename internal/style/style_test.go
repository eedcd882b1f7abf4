package style

import (
	"testing"

	"github.com/defvs/francegen/internal/config"
)

func TestResolveDefaults(t *testing.T) {
	p := config.Default()
	r, err := NewResolver(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	cs := r.Resolve(100, false, nil)
	if cs.Biome != BiomeID(p.BaseBiome) {
		t.Errorf("biome = %v, want %v", cs.Biome, p.BaseBiome)
	}
	if cs.TopBlock != BlockID(p.TopLayerBlock) {
		t.Errorf("top block = %v, want %v", cs.TopBlock, p.TopLayerBlock)
	}
	if cs.TopThickness != 1 {
		t.Errorf("thickness = %d, want 1", cs.TopThickness)
	}
}

// TestElevationLayerS4 implements spec §8 scenario S4.
func TestElevationLayerS4(t *testing.T) {
	p := config.Default()
	p.BiomeLayers = []config.BiomeLayer{
		{Range: config.LayerRange{Min: "0m", Max: "300m"}, Biome: "minecraft:plains"},
		{Range: config.LayerRange{Min: "300m", Max: "1200m"}, Biome: "minecraft:forest"},
	}
	r, err := NewResolver(p, nil)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		elev float64
		want BiomeID
	}{
		{0, "minecraft:plains"},
		{299.9, "minecraft:plains"},
		{300, "minecraft:forest"}, // boundary: min inclusive
		{600, "minecraft:forest"},
	}
	for _, c := range cases {
		cs := r.Resolve(c.elev, false, nil)
		if cs.Biome != c.want {
			t.Errorf("Resolve(%v).Biome = %v, want %v", c.elev, cs.Biome, c.want)
		}
	}
}

// TestLayerPriorityProperty3 implements spec §8 property 3: a directive
// with smaller layer_index overwrites a directive with larger layer_index.
func TestLayerPriorityProperty3(t *testing.T) {
	p := config.Default()
	r, err := NewResolver(p, nil)
	if err != nil {
		t.Fatal(err)
	}

	lowBlock := BlockID("minecraft:low_wins")
	highBlock := BlockID("minecraft:high_loses")

	directives := []PaintDirective{
		{LayerIndex: 10, Pass: PassOSM, InsertionOrder: 0, Patch: StylePatch{SurfaceBlock: &highBlock}},
		{LayerIndex: 1, Pass: PassOSM, InsertionOrder: 0, Patch: StylePatch{SurfaceBlock: &lowBlock}},
	}
	cs := r.Resolve(100, false, directives)
	if cs.TopBlock != lowBlock {
		t.Errorf("TopBlock = %v, want %v (lowest layer_index should win)", cs.TopBlock, lowBlock)
	}
}

func TestOSMBeforeWMTSOnTie(t *testing.T) {
	p := config.Default()
	r, err := NewResolver(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	osmBlock := BlockID("minecraft:osm")
	wmtsBlock := BlockID("minecraft:wmts")
	directives := []PaintDirective{
		{LayerIndex: 5, Pass: PassWMTS, InsertionOrder: 0, Patch: StylePatch{SurfaceBlock: &wmtsBlock}},
		{LayerIndex: 5, Pass: PassOSM, InsertionOrder: 0, Patch: StylePatch{SurfaceBlock: &osmBlock}},
	}
	cs := r.Resolve(100, false, directives)
	// OSM (pass 0) sorts before WMTS (pass 1) on tie, so WMTS is applied
	// later in the sorted-ascending order — but Resolve applies in reverse,
	// so OSM (earlier in ascending order) is applied LAST and wins.
	if cs.TopBlock != osmBlock {
		t.Errorf("TopBlock = %v, want %v (OSM should win the tie)", cs.TopBlock, osmBlock)
	}
}

func TestCliffOverridesTopBlockOnly(t *testing.T) {
	p := config.Default()
	p.CliffGeneration.Block = "minecraft:cliff_stone"
	r, err := NewResolver(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	cs := r.Resolve(100, true, nil)
	if cs.TopBlock != "minecraft:cliff_stone" {
		t.Errorf("TopBlock = %v, want cliff block", cs.TopBlock)
	}
	if cs.TopThickness != uint8(p.TopLayerThickness) {
		t.Errorf("TopThickness changed by cliff override: got %d", cs.TopThickness)
	}
}
