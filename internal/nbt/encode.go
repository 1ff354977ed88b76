package nbt

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Write encodes tag as a named tag to w. When compressed is true the
// output is gzip-wrapped, matching the on-disk encoding of standalone
// NBT files.
func Write(w io.Writer, tag Tag, compressed bool) error {
	b := buffer.New(buffer.BigEndian)
	if err := writeNamedTag(b, tag); err != nil {
		return err
	}
	out := w
	var gz *gzip.Writer
	if compressed {
		gz = gzip.NewWriter(w)
		out = gz
	}
	if _, err := out.Write(b.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
		}
	}
	return nil
}

func writeNamedTag(b *buffer.Buffer, tag Tag) error {
	b.WriteU8(byte(tag.ID()))
	if tag.ID() == IDEnd {
		return nil
	}
	if err := writeString(b, tag.Name()); err != nil {
		return err
	}
	return writePayload(b, tag)
}

func writeString(b *buffer.Buffer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: NBT string name too long (%d bytes)", protoerr.ErrOutOfRange, len(s))
	}
	b.WriteU16(uint16(len(s)))
	b.Write([]byte(s))
	return nil
}

func writePayload(b *buffer.Buffer, tag Tag) error {
	switch t := tag.(type) {
	case *TagByteTag:
		b.WriteI8(t.Value)
	case *TagShortTag:
		b.WriteI16(t.Value)
	case *TagIntTag:
		b.WriteI32(t.Value)
	case *TagLongTag:
		b.WriteI64(t.Value)
	case *TagFloatTag:
		b.WriteF32(t.Value)
	case *TagDoubleTag:
		b.WriteF64(t.Value)
	case *TagStringTag:
		return writeString(b, t.Value)
	case *TagByteArrayTag:
		b.WriteI32(int32(len(t.Value)))
		for _, v := range t.Value {
			b.WriteI8(v)
		}
	case *TagIntArrayTag:
		b.WriteI32(int32(len(t.Value)))
		for _, v := range t.Value {
			b.WriteI32(v)
		}
	case *TagLongArrayTag:
		b.WriteI32(int32(len(t.Value)))
		for _, v := range t.Value {
			b.WriteI64(v)
		}
	case *TagListTag:
		b.WriteU8(byte(t.elemType))
		b.WriteI32(int32(len(t.elements)))
		for _, elem := range t.elements {
			if err := writePayload(b, elem); err != nil {
				return err
			}
		}
	case *TagCompoundTag:
		for _, name := range t.order {
			if err := writeNamedTag(b, t.children[name]); err != nil {
				return err
			}
		}
		b.WriteU8(byte(IDEnd))
	default:
		return fmt.Errorf("%w: unhandled tag type %T", protoerr.ErrUnknownTagID, tag)
	}
	return nil
}
