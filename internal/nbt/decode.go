package nbt

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Read decodes a single named tag from r. When compressed is true, r is
// first unwrapped through gzip, matching the on-disk encoding of
// standalone NBT files (level.dat, player data).
func Read(r io.Reader, compressed bool) (Tag, error) {
	if compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip header: %v", protoerr.ErrDataCorrupted, err)
		}
		defer gz.Close()
		r = gz
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	b := buffer.Wrap(raw, buffer.BigEndian)
	b.Flip()
	return readNamedTag(b)
}

func readNamedTag(b *buffer.Buffer) (Tag, error) {
	id, err := b.ReadU8()
	if err != nil {
		return nil, err
	}
	tid := TagID(id)
	if tid == IDEnd {
		return TagEndTag{}, nil
	}
	name, err := readString(b)
	if err != nil {
		return nil, err
	}
	return readPayload(b, tid, name)
}

func readString(b *buffer.Buffer) (string, error) {
	n, err := b.ReadU16()
	if err != nil {
		return "", err
	}
	raw, err := b.Read(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", protoerr.ErrInvalidUTF8
	}
	return string(raw), nil
}

func readPayload(b *buffer.Buffer, id TagID, name string) (Tag, error) {
	switch id {
	case IDByte:
		v, err := b.ReadI8()
		if err != nil {
			return nil, err
		}
		return NewTagByte(name, v), nil
	case IDShort:
		v, err := b.ReadI16()
		if err != nil {
			return nil, err
		}
		return NewTagShort(name, v), nil
	case IDInt:
		v, err := b.ReadI32()
		if err != nil {
			return nil, err
		}
		return NewTagInt(name, v), nil
	case IDLong:
		v, err := b.ReadI64()
		if err != nil {
			return nil, err
		}
		return NewTagLong(name, v), nil
	case IDFloat:
		v, err := b.ReadF32()
		if err != nil {
			return nil, err
		}
		return NewTagFloat(name, v), nil
	case IDDouble:
		v, err := b.ReadF64()
		if err != nil {
			return nil, err
		}
		return NewTagDouble(name, v), nil
	case IDString:
		v, err := readString(b)
		if err != nil {
			return nil, err
		}
		return NewTagString(name, v), nil
	case IDByteArray:
		n, err := b.ReadI32()
		if err != nil {
			return nil, err
		}
		vals := make([]int8, n)
		for i := range vals {
			v, err := b.ReadI8()
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return NewTagByteArray(name, vals), nil
	case IDIntArray:
		n, err := b.ReadI32()
		if err != nil {
			return nil, err
		}
		vals := make([]int32, n)
		for i := range vals {
			v, err := b.ReadI32()
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return NewTagIntArray(name, vals), nil
	case IDLongArray:
		n, err := b.ReadI32()
		if err != nil {
			return nil, err
		}
		vals := make([]int64, n)
		for i := range vals {
			v, err := b.ReadI64()
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return NewTagLongArray(name, vals), nil
	case IDList:
		elemIDRaw, err := b.ReadU8()
		if err != nil {
			return nil, err
		}
		elemID := TagID(elemIDRaw)
		n, err := b.ReadI32()
		if err != nil {
			return nil, err
		}
		list := NewTagList(name, elemID)
		for i := int32(0); i < n; i++ {
			elem, err := readPayload(b, elemID, "")
			if err != nil {
				return nil, err
			}
			if err := list.Append(elem); err != nil {
				return nil, err
			}
		}
		return list, nil
	case IDCompound:
		compound := NewTagCompound(name)
		for {
			child, err := readNamedTag(b)
			if err != nil {
				return nil, err
			}
			if child.ID() == IDEnd {
				break
			}
			if err := compound.Set(child); err != nil {
				return nil, err
			}
		}
		return compound, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", protoerr.ErrUnknownTagID, byte(id))
	}
}
