// Package meta reads and writes francegen_meta.json, the companion
// metadata document spec §4.8 emits alongside a generated world.
package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document is the metadata emitted after mosaic construction (spec §3,
// §4.8). locate/info load it back to resolve coordinates and summarize a
// world without re-reading the source tiles.
type Document struct {
	OriginModelX float64 `json:"origin_model_x"`
	OriginModelZ float64 `json:"origin_model_z"`
	MinX         int     `json:"min_x"`
	MaxX         int     `json:"max_x"`
	MinZ         int     `json:"min_z"`
	MaxZ         int     `json:"max_z"`
	MinHeight    float64 `json:"min_height"`
	MaxHeight    float64 `json:"max_height"`
}

const fileName = "francegen_meta.json"

// Path returns the conventional metadata file path for a world directory.
func Path(worldDir string) string {
	return filepath.Join(worldDir, fileName)
}

// NewDocument assembles the metadata document from a run's computed bounds.
// Fields are derived entirely from the input mosaic, so two runs over
// identical inputs produce an identical Document (spec §8 property 2).
func NewDocument(originX, originZ float64, minX, maxX, minZ, maxZ int, minHeight, maxHeight float64) Document {
	return Document{
		OriginModelX: originX,
		OriginModelZ: originZ,
		MinX:         minX,
		MaxX:         maxX,
		MinZ:         minZ,
		MaxZ:         maxZ,
		MinHeight:    minHeight,
		MaxHeight:    maxHeight,
	}
}

// Write pretty-prints d to worldDir/francegen_meta.json with a trailing
// newline (spec §4.8).
func Write(worldDir string, d Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("meta: encode: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(Path(worldDir), data, 0o644); err != nil {
		return fmt.Errorf("meta: write: %w", err)
	}
	return nil
}

// Load reads and decodes worldDir/francegen_meta.json.
func Load(worldDir string) (Document, error) {
	data, err := os.ReadFile(Path(worldDir))
	if err != nil {
		return Document{}, fmt.Errorf("meta: read: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("meta: decode: %w", err)
	}
	return d, nil
}
