package config

import "testing"

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	p, err := Load([]byte(`{"top_layer_block":"minecraft:sand"}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.TopLayerBlock != "minecraft:sand" {
		t.Errorf("TopLayerBlock = %q, want override", p.TopLayerBlock)
	}
	if p.BottomLayerBlock != "minecraft:stone" {
		t.Errorf("BottomLayerBlock = %q, want default to survive", p.BottomLayerBlock)
	}
	if p.DataVersion != 3955 {
		t.Errorf("DataVersion = %d, want default 3955", p.DataVersion)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	if _, err := Load([]byte(`{"not_a_real_field":true}`)); err == nil {
		t.Error("expected a schema error for an unknown field")
	}
}

func TestValidateRejectsZeroTopLayerThickness(t *testing.T) {
	p := Default()
	p.TopLayerThickness = 0
	if err := p.Validate(); err == nil {
		t.Error("expected an error for top_layer_thickness < 1")
	}
}

func TestValidateRejectsMalformedRange(t *testing.T) {
	cases := []struct {
		name string
		p    func() StyleProfile
	}{
		{"biome_layers", func() StyleProfile {
			p := Default()
			p.BiomeLayers = []BiomeLayer{{Range: LayerRange{Min: "bad", Max: "300m"}, Biome: "minecraft:plains"}}
			return p
		}},
		{"top_block_layers", func() StyleProfile {
			p := Default()
			p.TopBlockLayers = []TopBlockLayer{{Range: LayerRange{Min: "0m", Max: "bad"}, Block: "minecraft:sand"}}
			return p
		}},
	}
	for _, c := range cases {
		if err := c.p().Validate(); err == nil {
			t.Errorf("%s: expected an error for a malformed range bound", c.name)
		}
	}
}

func TestValidateAcceptsBlockUnitRanges(t *testing.T) {
	p := Default()
	p.BiomeLayers = []BiomeLayer{{Range: LayerRange{Min: "-64b", Max: "320b"}, Biome: "minecraft:plains"}}
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error for valid block-unit range: %v", err)
	}
}
