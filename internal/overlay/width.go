package overlay

import (
	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/style"
)

// ResolveWidth implements the "source key cascade" design note (spec §9):
// take the first source key present on tags, coerce it to metres
// (multiplier default 1), clamp to [min,max]; fall through to the
// configured default when no source key matches or dw is nil.
func ResolveWidth(widthM *float64, dw *config.DynamicWidth, tags map[string]string) float64 {
	if dw == nil {
		if widthM != nil {
			return *widthM
		}
		return 1
	}
	for _, src := range dw.Sources {
		raw, ok := tags[src.Key]
		if !ok {
			continue
		}
		v, err := style.ParseUnitValue(raw)
		if err != nil {
			continue
		}
		mult := src.Multiplier
		if mult == 0 {
			mult = 1
		}
		return clamp(v*mult, dw.Min, dw.Max)
	}
	return clamp(dw.Default, dw.Min, dw.Max)
}

func clamp(v, min, max float64) float64 {
	if max > min {
		if v < min {
			return min
		}
		if v > max {
			return max
		}
	}
	return v
}

// ResolveExtrusionHeight resolves an Extrusion's height in metres, or
// (0, false) when the extrusion is absent or carries no height.
func ResolveExtrusionHeight(e *config.Extrusion) (float64, bool) {
	if e == nil || e.HeightM == nil {
		return 0, false
	}
	return *e.HeightM, true
}
