package style

import (
	"testing"

	"github.com/defvs/francegen/internal/config"
)

// flatGridWithStep implements ElevationSampler for scenario S3: a step
// function (elevation 100 for x<8, 200 for x>=8).
type flatGridWithStep struct{}

func (flatGridWithStep) ElevationAt(x, z int) float64 {
	if x < 8 {
		return 100
	}
	return 200
}

// TestCliffScenarioS3 implements spec §8 scenario S3.
func TestCliffScenarioS3(t *testing.T) {
	p := config.Default()
	p.CliffGeneration = config.CliffSettings{
		AngleThresholdDegrees: 45,
		SmoothingRadius:       1,
		SmoothingFactor:       0,
		Block:                 "minecraft:cliff_stone",
	}
	grid := flatGridWithStep{}
	analyzer := NewCliffAnalyzer(grid, p)

	// Columns adjacent to the step (x=7, x=8) should be cliffs.
	if !analyzer.IsCliff(7, 5, 100, "minecraft:plains") {
		t.Error("expected cliff at x=7 (adjacent to step)")
	}
	if !analyzer.IsCliff(8, 5, 200, "minecraft:plains") {
		t.Error("expected cliff at x=8 (adjacent to step)")
	}
	// Columns far from the step should not be cliffs.
	if analyzer.IsCliff(0, 5, 100, "minecraft:plains") {
		t.Error("expected no cliff far from step (x=0)")
	}
	if analyzer.IsCliff(15, 5, 200, "minecraft:plains") {
		t.Error("expected no cliff far from step (x=15)")
	}
}

// TestCliffIdempotence implements spec §8 property 5.
func TestCliffIdempotence(t *testing.T) {
	p := config.Default()
	grid := flatGridWithStep{}
	analyzer := NewCliffAnalyzer(grid, p)
	a := analyzer.IsCliff(8, 5, 200, "minecraft:plains")
	b := analyzer.IsCliff(8, 5, 200, "minecraft:plains")
	if a != b {
		t.Errorf("non-idempotent cliff decision: %v vs %v", a, b)
	}
}

type nanGrid struct{}

func (nanGrid) ElevationAt(x, z int) float64 {
	return nan()
}

func nan() float64 {
	var z float64
	return z / z
}

func TestCliffInactiveWithFewerThanTwoValidNeighbours(t *testing.T) {
	p := config.Default()
	analyzer := NewCliffAnalyzer(nanGrid{}, p)
	if analyzer.IsCliff(0, 0, 100, "minecraft:plains") {
		t.Error("expected cliff inactive when all neighbours are NaN")
	}
}

func TestCliffPerBiomeOverride(t *testing.T) {
	p := config.Default()
	p.CliffGeneration = config.CliffSettings{AngleThresholdDegrees: 89.5, SmoothingRadius: 1, SmoothingFactor: 0}
	p.BiomeLayers = []config.BiomeLayer{
		{
			Range:         config.LayerRange{Min: "0m", Max: "1000m"},
			Biome:         "minecraft:mountains",
			CliffOverride: &config.CliffSettings{AngleThresholdDegrees: 10},
		},
	}
	grid := flatGridWithStep{}
	analyzer := NewCliffAnalyzer(grid, p)

	// With the global 89.5-degree threshold, the step (max angle atan(100) ~89.43 deg at radius 1) is not a cliff.
	if analyzer.IsCliff(7, 5, 100, "minecraft:plains") {
		t.Error("expected no cliff under strict global threshold")
	}
	// With the mountains biome's 10-degree override, the same geometry is a cliff.
	if !analyzer.IsCliff(7, 5, 100, "minecraft:mountains") {
		t.Error("expected cliff under lenient per-biome override")
	}
}
