package region

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/risusan87/mcpyserver/internal/nbt"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Chunk is the smallest unit of world storage: a 16x16-column blob
// holding one compressed NBT document. The blob is kept raw until
// Load decodes it, so scanning a region's location table never pays
// for decompression of chunks nobody asked for.
type Chunk struct {
	X, Z      int
	Timestamp uint32
	Scheme    CompressionScheme

	raw []byte
}

// Load decompresses the chunk's payload per its compression scheme and
// parses one NBT root tag from the result.
func (c *Chunk) Load() (nbt.Tag, error) {
	var r io.Reader
	switch c.Scheme {
	case CompressionGZip:
		gz, err := gzip.NewReader(bytes.NewReader(c.raw))
		if err != nil {
			return nil, fmt.Errorf("%w: chunk gzip header: %v", protoerr.ErrDataCorrupted, err)
		}
		defer gz.Close()
		r = gz
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(c.raw))
		if err != nil {
			return nil, fmt.Errorf("%w: chunk zlib header: %v", protoerr.ErrDataCorrupted, err)
		}
		defer zr.Close()
		r = zr
	case CompressionUncompressed:
		r = bytes.NewReader(c.raw)
	default:
		return nil, fmt.Errorf("%w: unknown chunk compression scheme %d", protoerr.ErrDataCorrupted, c.Scheme)
	}
	return nbt.Read(r, false)
}
