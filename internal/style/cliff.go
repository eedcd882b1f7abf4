package style

import (
	"math"

	"github.com/defvs/francegen/internal/config"
)

// ElevationSampler returns the elevation in metres at world column (x, z),
// or NaN if there is no data there. It is satisfied by *raster.ElevationGrid.
type ElevationSampler interface {
	ElevationAt(x, z int) float64
}

// CliffAnalyzer implements spec §4.4: per-column smoothed slope angle and
// the resulting cliff/no-cliff decision.
type CliffAnalyzer struct {
	grid     ElevationSampler
	global   config.CliffSettings
	overrides map[BiomeID]config.CliffSettings
}

// NewCliffAnalyzer builds an analyzer over grid using the profile's global
// cliff settings, with optional per-biome-layer overrides.
func NewCliffAnalyzer(grid ElevationSampler, profile config.StyleProfile) *CliffAnalyzer {
	a := &CliffAnalyzer{
		grid:      grid,
		global:    profile.CliffGeneration,
		overrides: make(map[BiomeID]config.CliffSettings),
	}
	for _, bl := range profile.BiomeLayers {
		if bl.CliffOverride != nil {
			a.overrides[BiomeID(bl.Biome)] = *bl.CliffOverride
		}
	}
	return a
}

// settingsFor resolves the effective cliff settings for a column's matched
// biome, falling back to the global settings for any unset override field.
func (a *CliffAnalyzer) settingsFor(biome BiomeID) config.CliffSettings {
	s := a.global
	if ov, ok := a.overrides[biome]; ok {
		if ov.AngleThresholdDegrees != 0 {
			s.AngleThresholdDegrees = ov.AngleThresholdDegrees
		}
		if ov.SmoothingRadius != 0 {
			s.SmoothingRadius = ov.SmoothingRadius
		}
		if ov.SmoothingFactor != 0 {
			s.SmoothingFactor = ov.SmoothingFactor
		}
		if ov.Block != "" {
			s.Block = ov.Block
		}
	}
	return s
}

// IsCliff decides whether column (x, z), with elevation elevationM and
// resolved biome, is a cliff column. Running it twice over the same grid
// is idempotent (spec §8 property 5): it reads only grid and settings.
func (a *CliffAnalyzer) IsCliff(x, z int, elevationM float64, biome BiomeID) bool {
	s := a.settingsFor(biome)
	radius := s.SmoothingRadius
	if radius < 1 {
		radius = 1
	}

	var maxAngle, sumAngle float64
	var count int
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			dist := math.Hypot(float64(dx), float64(dz))
			if dist > float64(radius) {
				continue
			}
			ne := a.grid.ElevationAt(x+dx, z+dz)
			if math.IsNaN(ne) {
				continue
			}
			angle := math.Atan(math.Abs(elevationM-ne) / dist)
			if angle > maxAngle {
				maxAngle = angle
			}
			sumAngle += angle
			count++
		}
	}

	if count < 2 {
		return false
	}

	avgAngle := sumAngle / float64(count)
	f := s.SmoothingFactor
	blended := (1-f)*maxAngle + f*avgAngle
	blendedDeg := blended * 180 / math.Pi
	return blendedDeg > s.AngleThresholdDegrees
}
