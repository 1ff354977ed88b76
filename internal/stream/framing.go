package stream

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// FrameOutbound renders one clientbound frame: an outer VarInt length
// prefix wrapping either the raw body (compression disabled), a
// VarInt(0)-prefixed raw body (body shorter than threshold), or a
// VarInt(uncompressedLen)-prefixed zlib payload (body at or above
// threshold). threshold < 0 disables compression outright — no inner
// VarInt is written at all, matching get_bytes in
// original_source/networking/packet/__init__.py.
func FrameOutbound(packetID int32, payload []byte, threshold int) ([]byte, error) {
	body := buffer.New(buffer.BigEndian)
	body.WriteVarInt(packetID)
	body.Write(payload)
	bodyBytes := body.Bytes()

	pre := buffer.New(buffer.BigEndian)
	switch {
	case threshold < 0:
		pre.Write(bodyBytes)
	case len(bodyBytes) < threshold:
		pre.WriteVarInt(0)
		pre.Write(bodyBytes)
	default:
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		if _, err := zw.Write(bodyBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", protoerr.ErrIO, err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("%w: %v", protoerr.ErrIO, err)
		}
		pre.WriteVarInt(int32(len(bodyBytes)))
		pre.Write(compressed.Bytes())
	}

	outer := buffer.New(buffer.BigEndian)
	outer.WriteVarInt(int32(len(pre.Bytes())))
	outer.Write(pre.Bytes())
	return outer.Bytes(), nil
}

// ReadInboundFrame reads one serverbound frame from in, blocking until
// it's fully available. compressionEnabled must reflect the connection's
// current compression state (threshold >= 0 negotiated via
// CSetCompression) since the wire format omits the inner VarInt
// entirely when compression was never enabled.
func ReadInboundFrame(ctx context.Context, in *PacketInputStream, compressionEnabled bool) (packetID int32, payload []byte, err error) {
	outerLen, err := readVarIntFromStream(ctx, in)
	if err != nil {
		return 0, nil, err
	}
	if outerLen < 0 {
		return 0, nil, fmt.Errorf("%w: negative frame length", protoerr.ErrProtocol)
	}
	frame, err := in.Read(ctx, int(outerLen))
	if err != nil {
		return 0, nil, err
	}

	buf := buffer.Wrap(frame, buffer.BigEndian)
	buf.Flip()

	if compressionEnabled {
		uncompressedLen, err := buf.ReadVarInt()
		if err != nil {
			return 0, nil, err
		}
		rest, err := buf.Read(buf.Remaining())
		if err != nil {
			return 0, nil, err
		}
		if uncompressedLen == 0 {
			buf = buffer.Wrap(rest, buffer.BigEndian)
		} else {
			zr, err := zlib.NewReader(bytes.NewReader(rest))
			if err != nil {
				return 0, nil, fmt.Errorf("%w: %v", protoerr.ErrDataCorrupted, err)
			}
			defer zr.Close()
			decoded, err := io.ReadAll(zr)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: %v", protoerr.ErrDataCorrupted, err)
			}
			buf = buffer.Wrap(decoded, buffer.BigEndian)
		}
		buf.Flip()
	}

	packetID, err = buf.ReadVarInt()
	if err != nil {
		return 0, nil, err
	}
	payload, err = buf.Read(buf.Remaining())
	if err != nil {
		return 0, nil, err
	}
	return packetID, payload, nil
}

// readVarIntFromStream reads a VarInt one byte at a time from a
// blocking PacketInputStream, since the outer frame length must be
// decoded before its own byte count is known.
func readVarIntFromStream(ctx context.Context, in *PacketInputStream) (int32, error) {
	var result int32
	var shift uint
	for {
		b, err := in.Read(ctx, 1)
		if err != nil {
			return 0, err
		}
		result |= int32(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 35 {
			return 0, fmt.Errorf("%w: VarInt too long", protoerr.ErrProtocol)
		}
	}
	return result, nil
}
