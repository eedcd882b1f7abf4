package coord

import (
	"math"
	"testing"
)

func TestWebMercatorRoundTrip(t *testing.T) {
	proj := &WebMercatorProj{}
	cases := []struct {
		lon, lat float64
	}{
		{0, 0},
		{8.5417, 47.3769},  // Zurich
		{-74.0060, 40.7128}, // New York
		{139.6917, 35.6895}, // Tokyo
	}
	for _, c := range cases {
		x, y := proj.FromWGS84(c.lon, c.lat)
		gotLon, gotLat := proj.ToWGS84(x, y)
		if math.Abs(gotLon-c.lon) > 1e-6 || math.Abs(gotLat-c.lat) > 1e-6 {
			t.Errorf("FromWGS84/ToWGS84(%v, %v) roundtrip = (%v, %v)", c.lon, c.lat, gotLon, gotLat)
		}
	}
}

func TestWebMercatorEPSG(t *testing.T) {
	proj := &WebMercatorProj{}
	if proj.EPSG() != 3857 {
		t.Errorf("EPSG() = %d, want 3857", proj.EPSG())
	}
}

func TestWebMercatorOriginIsWorldOrigin(t *testing.T) {
	proj := &WebMercatorProj{}
	x, y := proj.FromWGS84(0, 0)
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("FromWGS84(0, 0) = (%v, %v), want (0, 0)", x, y)
	}
}
