package buffer

import (
	"testing"

	"github.com/risusan87/mcpyserver/internal/protoerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFlipRead(t *testing.T) {
	b := New(BigEndian)
	b.Write([]byte("abc"))
	b.Flip()
	got, err := b.Read(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
	assert.Equal(t, 3, b.Pos())
	assert.Equal(t, 3, b.Len())
}

func TestWrapAutoFlip(t *testing.T) {
	b := Wrap([]byte("xyz"), BigEndian)
	got, err := b.Read(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), got)
}

func TestMarkReset(t *testing.T) {
	b := Wrap([]byte("hello world"), BigEndian)
	b.Mark()
	p := b.Pos()
	_, err := b.Read(5)
	require.NoError(t, err)
	require.NoError(t, b.Reset())
	assert.Equal(t, p, b.Pos())
}

func TestResetWithoutMark(t *testing.T) {
	b := Wrap([]byte("abc"), BigEndian)
	err := b.Reset()
	assert.ErrorIs(t, err, protoerr.ErrInvalidMark)
}

func TestReadUnderflow(t *testing.T) {
	b := Wrap([]byte("ab"), BigEndian)
	_, err := b.Read(3)
	assert.ErrorIs(t, err, protoerr.ErrBufferUnderflow)
}

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, 127, 128, -1, 2147483647, -2147483648}
	for _, v := range cases {
		b := New(BigEndian)
		b.WriteVarInt(v)
		b.Flip()
		got, err := b.ReadVarInt()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVarIntEdgeCaseEncodings(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
	}
	for _, c := range cases {
		b := New(BigEndian)
		b.WriteVarInt(c.v)
		assert.Equal(t, c.want, b.Bytes())
	}
}

func TestVarIntOverlong(t *testing.T) {
	b := Wrap([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, BigEndian)
	_, err := b.ReadVarInt()
	assert.ErrorIs(t, err, protoerr.ErrProtocol)
}

func TestVarLongRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		b := New(BigEndian)
		b.WriteVarLong(v)
		b.Flip()
		got, err := b.ReadVarLong()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVarLongOverlong(t *testing.T) {
	b := Wrap([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, BigEndian)
	_, err := b.ReadVarLong()
	assert.ErrorIs(t, err, protoerr.ErrProtocol)
}

func TestUTF8StringRoundTrip(t *testing.T) {
	b := New(BigEndian)
	require.NoError(t, b.WriteUTF8String("hello", 32767))
	b.Flip()
	got, err := b.ReadUTF8String(32767)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestUTF8StringTooLong(t *testing.T) {
	b := New(BigEndian)
	err := b.WriteUTF8String("hello world", 3)
	assert.ErrorIs(t, err, protoerr.ErrOutOfRange)
}

func TestUUIDRoundTrip(t *testing.T) {
	var id [16]byte
	for i := range id {
		id[i] = byte(i)
	}
	b := New(BigEndian)
	b.WriteUUID(id)
	b.Flip()
	got, err := b.ReadUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestBitsetRoundTrip(t *testing.T) {
	bits := []uint64{0x1, 0xFFFFFFFFFFFFFFFF, 0}
	b := New(BigEndian)
	b.WriteBitset(bits)
	b.Flip()
	got, err := b.ReadBitset()
	require.NoError(t, err)
	assert.Equal(t, bits, got)
}

func TestFixedBitsetRoundTrip(t *testing.T) {
	b := New(BigEndian)
	require.NoError(t, b.WriteFixedBitset([]byte{0b00001010}, 8))
	b.Flip()
	got, err := b.ReadFixedBitset(8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0b00001010}, got)
}

func TestLittleEndianIntegers(t *testing.T) {
	b := New(LittleEndian)
	b.WriteI32(0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b.Bytes())
	b.Flip()
	got, err := b.ReadI32()
	require.NoError(t, err)
	assert.Equal(t, int32(0x01020304), got)
}
