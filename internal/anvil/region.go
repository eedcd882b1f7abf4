package anvil

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/oriumgames/nbt"

	"github.com/defvs/francegen/internal/coordmap"
)

const (
	sectorSize          = 4096
	headerSectors       = 2
	maxSectorsPerChunk  = 255
	compressionTypeZlib = 2
)

// RegionPath returns the conventional Anvil region filename for (rx, rz)
// under worldDir/region, per spec §6.
func RegionPath(worldDir string, rx, rz int) string {
	return filepath.Join(worldDir, "region", fmt.Sprintf("r.%d.%d.mca", rx, rz))
}

// WriteRegion serializes chunks into one Anvil region file at path
// following the sector layout of spec §4.7. Chunks need not cover every
// slot; local positions with no chunk keep a zero header entry. Chunk
// encoding happens in parallel (spec §5); the sector layout and final
// write are single-threaded so the file is deterministic regardless of
// goroutine scheduling.
func WriteRegion(path string, chunks []Chunk) error {
	ordered := make([]Chunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool {
		si := coordmap.FloorMod(ordered[i].CZ, 32)*32 + coordmap.FloorMod(ordered[i].CX, 32)
		sj := coordmap.FloorMod(ordered[j].CZ, 32)*32 + coordmap.FloorMod(ordered[j].CX, 32)
		return si < sj
	})

	payloads := make([][]byte, len(ordered))
	errs := make([]error, len(ordered))
	var wg sync.WaitGroup
	for i := range ordered {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payloads[i], errs[i] = encodeChunk(ordered[i].NBT)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("anvil: encode chunk (%d,%d): %w", ordered[i].CX, ordered[i].CZ, err)
		}
	}

	var locations [1024]uint32
	var timestamps [1024]uint32
	var body bytes.Buffer
	nextSector := headerSectors

	for i, c := range ordered {
		payload := payloads[i]
		slot := coordmap.FloorMod(c.CZ, 32)*32 + coordmap.FloorMod(c.CX, 32)

		entryLen := 5 + len(payload)
		sectors := (entryLen + sectorSize - 1) / sectorSize
		if sectors > maxSectorsPerChunk {
			return fmt.Errorf("anvil: chunk (%d,%d) exceeds %d-sector limit (%d sectors needed, %d bytes compressed)",
				c.CX, c.CZ, maxSectorsPerChunk, sectors, len(payload))
		}

		var header [5]byte
		binary.BigEndian.PutUint32(header[0:4], uint32(len(payload)+1))
		header[4] = compressionTypeZlib
		body.Write(header[:])
		body.Write(payload)
		if pad := sectors*sectorSize - entryLen; pad > 0 {
			body.Write(make([]byte, pad))
		}

		locations[slot] = uint32(nextSector)<<8 | uint32(sectors)
		timestamps[slot] = 0
		nextSector += sectors
	}

	var out bytes.Buffer
	out.Grow(2*sectorSize + body.Len())
	var locBuf [sectorSize]byte
	for i, v := range locations {
		binary.BigEndian.PutUint32(locBuf[i*4:i*4+4], v)
	}
	out.Write(locBuf[:])
	var tsBuf [sectorSize]byte
	for i, v := range timestamps {
		binary.BigEndian.PutUint32(tsBuf[i*4:i*4+4], v)
	}
	out.Write(tsBuf[:])
	out.Write(body.Bytes())

	return writeAtomic(path, out.Bytes())
}

// encodeChunk renders a chunk compound to big-endian NBT and zlib-compresses
// it (Anvil compression type 2).
func encodeChunk(c chunkNBT) ([]byte, error) {
	var raw bytes.Buffer
	if err := nbt.NewEncoderWithEncoding(&raw, nbt.BigEndian).Encode(c); err != nil {
		return nil, fmt.Errorf("encode nbt: %w", err)
	}
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		zw.Close()
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return compressed.Bytes(), nil
}

// writeAtomic writes data to path via a temp-file-then-rename so a crash
// mid-write never leaves a corrupt region file in place (spec §4.7 step 4).
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("anvil: create region dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("anvil: write temp region file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("anvil: rename temp region file: %w", err)
	}
	return nil
}
