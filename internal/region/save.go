package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Save writes a region file containing the given chunk NBT blobs
// (already binary-encoded, uncompressed) under worldRoot/region,
// zlib-compressing each payload per the on-disk scheme. This is the
// loader's write-side counterpart: the gameplay core hands it encoded
// chunk NBT, Save takes care of sectoring and the location/timestamp
// tables.
func Save(worldRoot string, regionX, regionZ int, chunks map[ChunkPos][]byte, timestamp uint32) error {
	dir := filepath.Join(worldRoot, "region")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", regionX, regionZ))

	locations := make([]byte, sectorSize)
	timestamps := make([]byte, sectorSize)
	var data bytes.Buffer

	nextSector := uint32(headerSectors)
	for pos, blob := range chunks {
		localX := pos.X - regionX*32
		localZ := pos.Z - regionZ*32
		if localX < 0 || localX > 31 || localZ < 0 || localZ > 31 {
			return fmt.Errorf("%w: chunk %v does not belong to region (%d,%d)", protoerr.ErrInvalidValue, pos, regionX, regionZ)
		}
		idx := localZ*32 + localX

		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		if _, err := zw.Write(blob); err != nil {
			return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
		}

		payloadLen := uint32(compressed.Len() + 1) // +1 for the scheme byte
		sectorCount := (payloadLen + 4 + sectorSize - 1) / sectorSize

		entry := (nextSector << 8) | (sectorCount & 0xFF)
		binary.BigEndian.PutUint32(locations[idx*4:idx*4+4], entry)
		binary.BigEndian.PutUint32(timestamps[idx*4:idx*4+4], timestamp)

		var header [5]byte
		binary.BigEndian.PutUint32(header[0:4], payloadLen)
		header[4] = byte(CompressionZlib)
		data.Write(header[:])
		data.Write(compressed.Bytes())

		padded := sectorCount * sectorSize
		if pad := int(padded) - (int(payloadLen) + 4); pad > 0 {
			data.Write(make([]byte, pad))
		}
		nextSector += sectorCount
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	defer f.Close()
	if _, err := f.Write(locations); err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	if _, err := f.Write(timestamps); err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	if _, err := f.Write(data.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	return nil
}
