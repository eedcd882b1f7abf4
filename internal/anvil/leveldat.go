package anvil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"path/filepath"

	"github.com/oriumgames/nbt"
)

// levelDataNBT is the minimal level.dat "Data" compound francegen emits
// (spec §6 "File outputs"). Vanilla stores this nested one level under a
// root "" compound holding a single "Data" tag.
type levelDataNBT struct {
	DataVersion   int32  `nbt:"DataVersion"`
	LevelName     string `nbt:"LevelName"`
	GeneratorName string `nbt:"generatorName"`
	SpawnX        int32  `nbt:"SpawnX"`
	SpawnY        int32  `nbt:"SpawnY"`
	SpawnZ        int32  `nbt:"SpawnZ"`
	Version       struct {
		Snapshot bool `nbt:"Snapshot"`
	} `nbt:"version"`
}

type levelRootNBT struct {
	Data levelDataNBT `nbt:"Data"`
}

// WriteLevelDat writes worldDir/level.dat: LevelName from the world
// directory's basename, generatorName "flat", spawn at
// (0, surfaceAtOrigin+1, 0) (spec §6).
func WriteLevelDat(worldDir string, dataVersion int32, surfaceAtOrigin int) error {
	root := levelRootNBT{
		Data: levelDataNBT{
			DataVersion:   dataVersion,
			LevelName:     filepath.Base(filepath.Clean(worldDir)),
			GeneratorName: "flat",
			SpawnX:        0,
			SpawnY:        int32(surfaceAtOrigin + 1),
			SpawnZ:        0,
		},
	}

	var raw bytes.Buffer
	if err := nbt.NewEncoderWithEncoding(&raw, nbt.BigEndian).Encode(root); err != nil {
		return fmt.Errorf("anvil: encode level.dat: %w", err)
	}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(raw.Bytes()); err != nil {
		gw.Close()
		return fmt.Errorf("anvil: gzip level.dat: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("anvil: gzip level.dat: %w", err)
	}

	return writeAtomic(filepath.Join(worldDir, "level.dat"), gz.Bytes())
}
