package netfetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/defvs/francegen/internal/overlay"
)

// wmtsCapabilities is the subset of a WMTS 1.0.0 GetCapabilities document
// needed to resolve one named tile matrix set and a ResourceURL template
// for tile fetches. Namespaces are ignored (xml.Name.Local matching only):
// real-world WMTS servers are inconsistent about prefixing ows:/wmts:.
type wmtsCapabilities struct {
	Contents struct {
		Layers []struct {
			Identifier   string `xml:"Identifier"`
			ResourceURLs []struct {
				Template     string `xml:"template,attr"`
				ResourceType string `xml:"resourceType,attr"`
			} `xml:"ResourceURL"`
			TileMatrixSetLinks []struct {
				TileMatrixSet string `xml:"TileMatrixSet"`
			} `xml:"TileMatrixSetLink"`
		} `xml:"Layer"`
		TileMatrixSets []struct {
			Identifier  string `xml:"Identifier"`
			TileMatrix  []struct {
				Identifier       string `xml:"Identifier"`
				ScaleDenominator string `xml:"ScaleDenominator"`
				TopLeftCorner    string `xml:"TopLeftCorner"`
				TileWidth        int    `xml:"TileWidth"`
				TileHeight       int    `xml:"TileHeight"`
				MatrixWidth      int    `xml:"MatrixWidth"`
				MatrixHeight     int    `xml:"MatrixHeight"`
			} `xml:"TileMatrix"`
		} `xml:"TileMatrixSet"`
	} `xml:"Contents"`
}

// standardizedRenderingPixelSize is the OGC WMTS-mandated physical pixel
// size (0.28mm) used to convert a matrix's ScaleDenominator into
// metres-per-pixel, per the WMTS 1.0.0 specification §C.2.
const standardizedRenderingPixelSize = 0.00028

// httpCapabilitiesResolver is the concrete CapabilitiesResolver the CLI
// layer injects: fetches and parses a GetCapabilities document through the
// same Fetcher the rest of the pipeline uses, so caching/retry wrap it too.
type httpCapabilitiesResolver struct {
	fetcher Fetcher
}

// NewCapabilitiesResolver builds a CapabilitiesResolver backed by fetcher
// (typically the same WithRetry/WithCache-wrapped Fetcher used for tiles).
func NewCapabilitiesResolver(fetcher Fetcher) CapabilitiesResolver {
	return &httpCapabilitiesResolver{fetcher: fetcher}
}

func (r *httpCapabilitiesResolver) Resolve(ctx context.Context, capabilitiesURL, tileMatrixSet string) (WMTSSource, error) {
	body, err := r.fetcher.Fetch(ctx, capabilitiesURL)
	if err != nil {
		return WMTSSource{}, fmt.Errorf("netfetch: fetch wmts capabilities: %w", err)
	}

	var caps wmtsCapabilities
	if err := xml.Unmarshal(body, &caps); err != nil {
		return WMTSSource{}, fmt.Errorf("netfetch: parse wmts capabilities: %w", err)
	}

	var matrixDef *struct {
		Identifier       string `xml:"Identifier"`
		ScaleDenominator string `xml:"ScaleDenominator"`
		TopLeftCorner    string `xml:"TopLeftCorner"`
		TileWidth        int    `xml:"TileWidth"`
		TileHeight       int    `xml:"TileHeight"`
		MatrixWidth      int    `xml:"MatrixWidth"`
		MatrixHeight     int    `xml:"MatrixHeight"`
	}
	for i := range caps.Contents.TileMatrixSets {
		set := &caps.Contents.TileMatrixSets[i]
		if set.Identifier != tileMatrixSet {
			continue
		}
		for j := range set.TileMatrix {
			// The finest (highest-resolution) level of the named set is used:
			// francegen has no zoom concept, it samples whatever resolution
			// the set's top matrix offers.
			if matrixDef == nil || finer(set.TileMatrix[j].ScaleDenominator, matrixDef.ScaleDenominator) {
				matrixDef = &set.TileMatrix[j]
			}
		}
	}
	if matrixDef == nil {
		return WMTSSource{}, fmt.Errorf("netfetch: tile matrix set %q not found in capabilities", tileMatrixSet)
	}

	topLeftX, topLeftY, err := parseTopLeftCorner(matrixDef.TopLeftCorner)
	if err != nil {
		return WMTSSource{}, fmt.Errorf("netfetch: parse TopLeftCorner: %w", err)
	}
	scale, err := strconv.ParseFloat(matrixDef.ScaleDenominator, 64)
	if err != nil {
		return WMTSSource{}, fmt.Errorf("netfetch: parse ScaleDenominator: %w", err)
	}

	matrix := overlay.TileMatrix{
		TopLeftX:       topLeftX,
		TopLeftY:       topLeftY,
		MetresPerPixel: scale * standardizedRenderingPixelSize,
		TileWidth:      matrixDef.TileWidth,
		TileHeight:     matrixDef.TileHeight,
		MatrixWidth:    matrixDef.MatrixWidth,
		MatrixHeight:   matrixDef.MatrixHeight,
	}

	template, err := resourceURLTemplate(caps, tileMatrixSet)
	if err != nil {
		return WMTSSource{}, err
	}

	matrixIdentifier := matrixDef.Identifier
	tileURL := func(c overlay.TileCoord) string {
		s := strings.NewReplacer(
			"{TileMatrixSet}", tileMatrixSet,
			"{TileMatrix}", matrixIdentifier,
			"{TileCol}", strconv.Itoa(c.Col),
			"{TileRow}", strconv.Itoa(c.Row),
		).Replace(template)
		return s
	}

	return WMTSSource{Matrix: matrix, TileURL: tileURL}, nil
}

func resourceURLTemplate(caps wmtsCapabilities, tileMatrixSet string) (string, error) {
	for _, layer := range caps.Contents.Layers {
		linked := false
		for _, link := range layer.TileMatrixSetLinks {
			if link.TileMatrixSet == tileMatrixSet {
				linked = true
				break
			}
		}
		if !linked {
			continue
		}
		for _, ru := range layer.ResourceURLs {
			if ru.ResourceType == "tile" {
				return ru.Template, nil
			}
		}
	}
	return "", fmt.Errorf("netfetch: no tile ResourceURL found for tile matrix set %q", tileMatrixSet)
}

// finer reports whether scale a denotes a finer (smaller-denominator, more
// detailed) resolution than b.
func finer(a, b string) bool {
	av, errA := strconv.ParseFloat(a, 64)
	bv, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return false
	}
	return av < bv
}

func parseTopLeftCorner(s string) (x, y float64, err error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"x y\", got %q", s)
	}
	x, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
