package netfetch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/defvs/francegen/internal/overlay"
)

func TestDecodeWMTSTile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tile, err := DecodeWMTSTile(overlay.TileCoord{Col: 3, Row: 4}, buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if tile.Coord.Col != 3 || tile.Coord.Row != 4 {
		t.Errorf("unexpected coord: %+v", tile.Coord)
	}
	r, g, b, a := tile.Image.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("unexpected decoded pixel: %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestDecodeWMTSTileInvalidData(t *testing.T) {
	if _, err := DecodeWMTSTile(overlay.TileCoord{}, []byte("not a png")); err == nil {
		t.Fatal("expected error for invalid PNG data")
	}
}
