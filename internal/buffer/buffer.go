// Package buffer implements a positional byte store with big- and
// little-endian typed codecs for the Minecraft Java Edition wire protocol
// and NBT format: primitives, VarInt/VarLong, length-prefixed UTF-8,
// UUID, and the two bitset encodings the protocol uses.
package buffer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Order selects the wire byte order used by typed reads/writes. It does
// not affect the backing byte slice layout, only how multi-byte integers
// are packed into it.
type Order int

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Buffer is a growable byte store with a read/write position. Writes
// always append at the end and grow the recorded length; reads advance
// the position and never reorder the underlying bytes.
//
// Invariant: 0 <= pos <= length <= cap(data).
type Buffer struct {
	data    []byte
	length  int
	pos     int
	mark    int
	hasMark bool
	order   Order
}

// New returns an empty buffer using the given wire byte order.
func New(order Order) *Buffer {
	return &Buffer{order: order}
}

// Wrap returns a new buffer holding a copy of data, positioned at 0.
func Wrap(data []byte, order Order) *Buffer {
	b := New(order)
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.length = len(data)
	return b
}

// Order reports the buffer's configured wire byte order.
func (b *Buffer) Order() Order { return b.order }

// Write appends p to the end of the buffer and grows the recorded
// length. The write position is unaffected by the read position.
func (b *Buffer) Write(p []byte) {
	b.data = append(b.data[:b.length], p...)
	b.length += len(p)
}

// Read consumes n bytes starting at the current position and advances
// it. The returned slice is a fresh copy, safe to mutate.
func (b *Buffer) Read(n int) ([]byte, error) {
	if n < 0 || b.pos+n > b.length {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", protoerr.ErrBufferUnderflow, n, b.length-b.pos)
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+n])
	b.pos += n
	return out, nil
}

// Peek behaves like Read but does not advance the position.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if n < 0 || b.pos+n > b.length {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", protoerr.ErrBufferUnderflow, n, b.length-b.pos)
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+n])
	return out, nil
}

// Flip resets the read position to the start of the buffer, leaving the
// recorded length untouched.
func (b *Buffer) Flip() { b.pos = 0 }

// Mark records the current position for a later Reset.
func (b *Buffer) Mark() {
	b.mark = b.pos
	b.hasMark = true
}

// Reset restores the position saved by the most recent Mark.
func (b *Buffer) Reset() error {
	if !b.hasMark {
		return protoerr.ErrInvalidMark
	}
	b.pos = b.mark
	return nil
}

// Rewind clears the position and any outstanding mark.
func (b *Buffer) Rewind() {
	b.pos = 0
	b.hasMark = false
	b.mark = 0
}

// Seek moves the read position to an absolute offset within [0, length].
func (b *Buffer) Seek(pos int) error {
	if pos < 0 || pos > b.length {
		return fmt.Errorf("%w: %d not in [0,%d]", protoerr.ErrInvalidPosition, pos, b.length)
	}
	b.pos = pos
	return nil
}

// Remaining reports how many unread bytes remain.
func (b *Buffer) Remaining() int { return b.length - b.pos }

// Cap reports the capacity of the backing array.
func (b *Buffer) Cap() int { return cap(b.data) }

// Pos reports the current read/write position.
func (b *Buffer) Pos() int { return b.pos }

// Len reports the recorded length of the buffer.
func (b *Buffer) Len() int { return b.length }

// Bytes returns the valid (length-bounded) contents of the buffer. The
// returned slice aliases internal storage and must not be retained
// across further writes.
func (b *Buffer) Bytes() []byte { return b.data[:b.length] }

func outOfRange(what string) error {
	return fmt.Errorf("%w: %s", protoerr.ErrOutOfRange, what)
}

// --- primitive codecs ---

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.Write([]byte{1})
	} else {
		b.Write([]byte{0})
	}
}

func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.Read(1)
	if err != nil {
		return false, err
	}
	return v[0] != 0, nil
}

func (b *Buffer) WriteI8(v int8) { b.Write([]byte{byte(v)}) }

func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return int8(v[0]), nil
}

func (b *Buffer) WriteU8(v uint8) { b.Write([]byte{v}) }

func (b *Buffer) ReadU8() (uint8, error) {
	v, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (b *Buffer) WriteI16(v int16) {
	buf := make([]byte, 2)
	b.order.binary().PutUint16(buf, uint16(v))
	b.Write(buf)
}

func (b *Buffer) ReadI16() (int16, error) {
	v, err := b.Read(2)
	if err != nil {
		return 0, err
	}
	return int16(b.order.binary().Uint16(v)), nil
}

func (b *Buffer) WriteU16(v uint16) {
	buf := make([]byte, 2)
	b.order.binary().PutUint16(buf, v)
	b.Write(buf)
}

func (b *Buffer) ReadU16() (uint16, error) {
	v, err := b.Read(2)
	if err != nil {
		return 0, err
	}
	return b.order.binary().Uint16(v), nil
}

func (b *Buffer) WriteI32(v int32) {
	buf := make([]byte, 4)
	b.order.binary().PutUint32(buf, uint32(v))
	b.Write(buf)
}

func (b *Buffer) ReadI32() (int32, error) {
	v, err := b.Read(4)
	if err != nil {
		return 0, err
	}
	return int32(b.order.binary().Uint32(v)), nil
}

func (b *Buffer) WriteI64(v int64) {
	buf := make([]byte, 8)
	b.order.binary().PutUint64(buf, uint64(v))
	b.Write(buf)
}

func (b *Buffer) ReadI64() (int64, error) {
	v, err := b.Read(8)
	if err != nil {
		return 0, err
	}
	return int64(b.order.binary().Uint64(v)), nil
}

func (b *Buffer) WriteF32(v float32) { b.WriteI32(int32(math.Float32bits(v))) }

func (b *Buffer) ReadF32() (float32, error) {
	v, err := b.ReadI32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func (b *Buffer) WriteF64(v float64) { b.WriteI64(int64(math.Float64bits(v))) }

func (b *Buffer) ReadF64() (float64, error) {
	v, err := b.ReadI64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// --- VarInt / VarLong ---

// WriteVarInt encodes a 32-bit value as its unsigned two's-complement
// representation, 7 payload bits per byte, MSB as continuation.
func (b *Buffer) WriteVarInt(v int32) {
	u := uint32(v)
	for {
		chunk := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			chunk |= 0x80
		}
		b.Write([]byte{chunk})
		if u == 0 {
			break
		}
	}
}

// ReadVarInt decodes a VarInt, rejecting encodings longer than 5 bytes.
func (b *Buffer) ReadVarInt() (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		octet, err := b.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(octet&0x7F) << (7 * i)
		if octet&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, fmt.Errorf("%w: varint longer than 5 bytes", protoerr.ErrProtocol)
}

// WriteVarLong encodes a 64-bit value as its unsigned two's-complement
// representation, analogous to WriteVarInt.
func (b *Buffer) WriteVarLong(v int64) {
	u := uint64(v)
	for {
		chunk := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			chunk |= 0x80
		}
		b.Write([]byte{chunk})
		if u == 0 {
			break
		}
	}
}

// ReadVarLong decodes a VarLong, rejecting encodings longer than 10 bytes.
func (b *Buffer) ReadVarLong() (int64, error) {
	var result uint64
	for i := 0; i < 10; i++ {
		octet, err := b.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint64(octet&0x7F) << (7 * i)
		if octet&0x80 == 0 {
			return int64(result), nil
		}
	}
	return 0, fmt.Errorf("%w: varlong longer than 10 bytes", protoerr.ErrProtocol)
}

// --- UTF-8 strings ---

func utf16Units(s string) int {
	units := 0
	for _, r := range s {
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return units
}

// WriteUTF8String writes a VarInt-length-prefixed UTF-8 string, enforcing
// that s encodes to at most n UTF-16 code units and n*3 bytes.
func (b *Buffer) WriteUTF8String(s string, n int) error {
	if n > 32767 {
		return outOfRange("max string length is 32767 UTF-16 units")
	}
	if utf16Units(s) > n {
		return outOfRange(fmt.Sprintf("string exceeds %d UTF-16 units", n))
	}
	raw := []byte(s)
	if len(raw) > n*3 {
		return outOfRange(fmt.Sprintf("encoded string exceeds %d bytes", n*3))
	}
	b.WriteVarInt(int32(len(raw)))
	b.Write(raw)
	return nil
}

// ReadUTF8String reads a VarInt-length-prefixed UTF-8 string, validating
// the encoded byte length against 3n+3 and the decoded UTF-16 code-unit
// count against n.
func (b *Buffer) ReadUTF8String(n int) (string, error) {
	if n > 32767 {
		return "", outOfRange("max string length is 32767 UTF-16 units")
	}
	byteLen, err := b.ReadVarInt()
	if err != nil {
		return "", err
	}
	if byteLen < 0 || int(byteLen) > n*3+3 {
		return "", fmt.Errorf("%w: encoded string length %d exceeds %d bytes", protoerr.ErrDataCorrupted, byteLen, n*3+3)
	}
	raw, err := b.Read(int(byteLen))
	if err != nil {
		return "", err
	}
	s := string(raw)
	if utf16Units(s) > n {
		return "", fmt.Errorf("%w: string exceeds %d UTF-16 units", protoerr.ErrDataCorrupted, n)
	}
	return s, nil
}

// --- UUID ---

func (b *Buffer) WriteUUID(u [16]byte) { b.Write(u[:]) }

func (b *Buffer) ReadUUID() ([16]byte, error) {
	var out [16]byte
	raw, err := b.Read(16)
	if err != nil {
		return out, err
	}
	copy(out[:], raw)
	return out, nil
}

// --- bitsets ---

// WriteBitset writes the VarInt-prefixed long-array bitset form: bit i
// lives in word i/64, bit i%64.
func (b *Buffer) WriteBitset(bits []uint64) {
	b.WriteVarInt(int32(len(bits)))
	for _, w := range bits {
		b.WriteI64(int64(w))
	}
}

// ReadBitset reads the VarInt-prefixed long-array bitset form.
func (b *Buffer) ReadBitset() ([]uint64, error) {
	n, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative bitset length", protoerr.ErrDataCorrupted)
	}
	out := make([]uint64, n)
	for i := range out {
		w, err := b.ReadI64()
		if err != nil {
			return nil, err
		}
		out[i] = uint64(w)
	}
	return out, nil
}

// WriteFixedBitset writes a fixed-length byte bitset of k bits: bit i
// lives in byte i/8, bit i%8. This encoding is not interchangeable with
// the long-array form written by WriteBitset.
func (b *Buffer) WriteFixedBitset(bits []byte, k int) error {
	want := (k + 7) / 8
	if len(bits) != want {
		return outOfRange(fmt.Sprintf("fixed bitset for %d bits needs %d bytes, got %d", k, want, len(bits)))
	}
	b.Write(bits)
	return nil
}

// ReadFixedBitset reads a fixed-length byte bitset of k bits.
func (b *Buffer) ReadFixedBitset(k int) ([]byte, error) {
	n := (k + 7) / 8
	return b.Read(n)
}
