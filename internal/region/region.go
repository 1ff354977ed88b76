// Package region implements the on-disk Anvil region file format:
// 1024 sectored chunk slots addressed by a location table, with
// per-chunk zlib/gzip-compressed NBT payloads.
package region

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/risusan87/mcpyserver/internal/protoerr"
)

const (
	sectorSize      = 4096
	locationEntries = 1024
	headerSectors   = 2 // location table + timestamp table
)

// CompressionScheme identifies how a chunk blob's payload is compressed.
type CompressionScheme byte

const (
	CompressionGZip        CompressionScheme = 1
	CompressionZlib        CompressionScheme = 2
	CompressionUncompressed CompressionScheme = 3
)

// ChunkPos identifies a chunk by its absolute chunk coordinates.
type ChunkPos struct {
	X, Z int
}

// RegionStat is a diagnostic snapshot derived from the location and
// timestamp tables, without touching any chunk payload.
type RegionStat struct {
	Loaded     int
	Vacant     int
	MinTimestamp uint32
	MaxTimestamp uint32
}

// Region holds up to 1024 chunk slots for a 32x32 chunk area, identified
// by region coordinates (x, z).
type Region struct {
	X, Z   int
	chunks map[ChunkPos]*Chunk
}

// Load reads the region file r.<regionX>.<regionZ>.mca rooted at
// worldRoot/region and maps every non-vacant slot into a Chunk holding
// its raw (still compressed) blob. Chunk payloads are decoded lazily via
// (*Chunk).Load.
func Load(worldRoot string, regionX, regionZ int) (*Region, error) {
	path := filepath.Join(worldRoot, "region", fmt.Sprintf("r.%d.%d.mca", regionX, regionZ))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	defer f.Close()

	header := make([]byte, headerSectors*sectorSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: reading region header: %v", protoerr.ErrIO, err)
	}

	reg := &Region{X: regionX, Z: regionZ, chunks: make(map[ChunkPos]*Chunk)}
	for i := 0; i < locationEntries; i++ {
		entry := binary.BigEndian.Uint32(header[i*4 : i*4+4])
		sectorOffset := entry >> 8
		sectorCount := entry & 0xFF
		if sectorOffset == 0 {
			continue // vacant slot
		}
		timestamp := binary.BigEndian.Uint32(header[sectorSize+i*4 : sectorSize+i*4+4])

		blobHeader := make([]byte, 5)
		off := int64(sectorOffset) * sectorSize
		if _, err := f.ReadAt(blobHeader, off); err != nil {
			return nil, fmt.Errorf("%w: reading chunk %d header: %v", protoerr.ErrIO, i, err)
		}
		payloadLen := binary.BigEndian.Uint32(blobHeader[0:4])
		scheme := CompressionScheme(blobHeader[4])
		if payloadLen == 0 {
			continue
		}
		payload := make([]byte, payloadLen-1)
		if _, err := f.ReadAt(payload, off+5); err != nil {
			return nil, fmt.Errorf("%w: reading chunk %d payload: %v", protoerr.ErrIO, i, err)
		}

		pos := ChunkPos{X: regionX*32 + i%32, Z: regionZ*32 + i/32}
		reg.chunks[pos] = &Chunk{
			X:         pos.X,
			Z:         pos.Z,
			Timestamp: timestamp,
			Scheme:    scheme,
			raw:       payload,
		}
	}
	return reg, nil
}

// ChunkAt returns the chunk at world chunk coordinates (x, z), or false
// if that slot is vacant. Callers derive the owning region themselves
// via RegionCoords before calling Load.
func (r *Region) ChunkAt(x, z int) (*Chunk, bool) {
	c, ok := r.chunks[ChunkPos{X: x, Z: z}]
	return c, ok
}

// RegionCoords derives the region coordinates containing chunk (x, z).
func RegionCoords(chunkX, chunkZ int) (regionX, regionZ int) {
	return chunkX >> 5, chunkZ >> 5
}

// Stat summarizes the region's location/timestamp tables without
// decoding any chunk payload.
func (r *Region) Stat() RegionStat {
	stat := RegionStat{Vacant: locationEntries - len(r.chunks)}
	first := true
	for _, c := range r.chunks {
		stat.Loaded++
		if first {
			stat.MinTimestamp, stat.MaxTimestamp = c.Timestamp, c.Timestamp
			first = false
			continue
		}
		if c.Timestamp < stat.MinTimestamp {
			stat.MinTimestamp = c.Timestamp
		}
		if c.Timestamp > stat.MaxTimestamp {
			stat.MaxTimestamp = c.Timestamp
		}
	}
	return stat
}

// TicketType names the reason a chunk's load level is being
// escalated or held, mirroring the Notchian chunk-ticket system.
type TicketType int

const (
	TicketPlayer TicketType = iota
	TicketForced
	TicketStart
	TicketPortal
	TicketDragon
	TicketPostTeleport
	TicketUnknown
	TicketLight
)

// TicketSink is the seam the gameplay core uses to escalate or
// downgrade a chunk's load level. The loader itself neither enforces
// load-level transitions nor records the requests it receives.
type TicketSink interface {
	Ticket(pos ChunkPos, loadLevel int, ticketType TicketType, ttl int) error
}

// Ticket is the Region's own no-enforcement TicketSink implementation:
// it validates the ticket type and otherwise accepts the call, matching
// the loader's documented scope (level enforcement belongs to the
// gameplay core, not the disk format).
func (r *Region) Ticket(pos ChunkPos, loadLevel int, ticketType TicketType, ttl int) error {
	if ticketType < TicketPlayer || ticketType > TicketLight {
		return fmt.Errorf("%w: unknown ticket type %d", protoerr.ErrInvalidValue, ticketType)
	}
	return nil
}
