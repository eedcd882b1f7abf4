package coord

import "math"

// OriginShift is half the earth's equatorial circumference in meters,
// the scale factor between Web Mercator meters and degrees of longitude.
const OriginShift = 20037508.342789244

// WebMercatorProj implements the Projection interface for EPSG:3857, the
// CRS WMTS overlay sources (spec §4.5) most commonly publish tiles in.
type WebMercatorProj struct{}

func (w *WebMercatorProj) EPSG() int { return 3857 }

func (w *WebMercatorProj) ToWGS84(x, y float64) (lon, lat float64) {
	lon = (x / OriginShift) * 180.0
	lat = (y / OriginShift) * 180.0
	lat = 180.0 / math.Pi * (2.0*math.Atan(math.Exp(lat*math.Pi/180.0)) - math.Pi/2.0)
	return
}

func (w *WebMercatorProj) FromWGS84(lon, lat float64) (x, y float64) {
	x = lon * OriginShift / 180.0
	y = math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * OriginShift / 180.0
	return
}
