package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/defvs/francegen/internal/coordmap"
)

// ElevRange is a parsed, inclusive-min/exclusive-max elevation range in
// metres (spec §3 "Layer ranges").
type ElevRange struct {
	MinM, MaxM float64
}

// Contains reports whether elevationM falls in [MinM, MaxM).
func (r ElevRange) Contains(elevationM float64) bool {
	return elevationM >= r.MinM && elevationM < r.MaxM
}

// ParseRange parses a {min,max} range pair where each bound is a number
// suffixed with "m" (metres) or "b" (block units, converted via the fixed
// vertical shift) into an ElevRange. Total: callers must have already
// regex-validated the strings (see internal/config); ParseRange itself
// still returns an error on malformed input for defense in depth.
func ParseRange(minStr, maxStr string) (ElevRange, error) {
	minM, err := parseBound(minStr)
	if err != nil {
		return ElevRange{}, fmt.Errorf("range min: %w", err)
	}
	maxM, err := parseBound(maxStr)
	if err != nil {
		return ElevRange{}, fmt.Errorf("range max: %w", err)
	}
	return ElevRange{MinM: minM, MaxM: maxM}, nil
}

// parseBound converts a single "300m" or "1200b" bound to metres.
func parseBound(s string) (float64, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("malformed bound %q", s)
	}
	unit := s[len(s)-1]
	numPart := s[:len(s)-1]
	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed bound %q: %w", s, err)
	}
	switch unit {
	case 'm':
		return v, nil
	case 'b':
		// Block units are world-Y values; convert back to metres by undoing
		// the fixed vertical shift applied in coordmap.HeightToY.
		return v - coordmap.VerticalShift, nil
	default:
		return 0, fmt.Errorf("unknown unit suffix in bound %q", s)
	}
}

// ParseUnitValue parses a free-form measurement like "5 m", "5", or "5.0m"
// into metres. This is the shared parser named in spec §9 ("Dynamic
// widths/extrusions"): it backs the OSM width-cascade tag values. A missing
// unit is read as metres; any other unit suffix makes it return an error.
func ParseUnitValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "m")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed measurement %q: %w", s, err)
	}
	return v, nil
}
