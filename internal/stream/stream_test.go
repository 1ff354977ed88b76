package stream

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketInputStreamReadBlocksUntilAvailable(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	in := NewPacketInputStream(server)
	defer in.Close()

	go func() {
		client.Write([]byte("hello"))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := in.Read(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestPacketInputStreamReadRespectsContextCancel(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	in := NewPacketInputStream(server)
	defer in.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := in.Read(ctx, 10)
	assert.Error(t, err)
}

func TestPacketOutputStreamFlush(t *testing.T) {
	var buf bytes.Buffer
	out := NewPacketOutputStream(&buf)
	out.Write([]byte("abc"))
	out.Write([]byte("def"))
	require.NoError(t, out.Flush())
	assert.Equal(t, "abcdef", buf.String())

	require.NoError(t, out.Flush())
	assert.Equal(t, "abcdef", buf.String())
}

func TestFrameOutboundUncompressedBelowThreshold(t *testing.T) {
	frame, err := FrameOutbound(0x00, []byte("payload"), 64)
	require.NoError(t, err)
	// outer length 9, inner VarInt(0) marking an uncompressed body, packet id 0x00
	assert.Equal(t, []byte{0x09, 0x00, 0x00}, frame[:3])
	assert.Equal(t, []byte("payload"), frame[3:])
}

func TestFrameRoundTripUncompressed(t *testing.T) {
	payload := []byte("hello world")
	frame, err := FrameOutbound(0x05, payload, -1)
	require.NoError(t, err)

	r, w := io.Pipe()
	go func() {
		w.Write(frame)
		w.Close()
	}()
	in := NewPacketInputStream(r)
	defer in.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	id, body, err := ReadInboundFrame(ctx, in, false)
	require.NoError(t, err)
	assert.Equal(t, int32(0x05), id)
	assert.Equal(t, payload, body)
}

func TestFrameRoundTripCompressed(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 200)
	frame, err := FrameOutbound(0x01, payload, 16)
	require.NoError(t, err)

	r, w := io.Pipe()
	go func() {
		w.Write(frame)
		w.Close()
	}()
	in := NewPacketInputStream(r)
	defer in.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	id, body, err := ReadInboundFrame(ctx, in, true)
	require.NoError(t, err)
	assert.Equal(t, int32(0x01), id)
	assert.Equal(t, payload, body)
}

func TestFrameRoundTripCompressedBelowThreshold(t *testing.T) {
	payload := []byte("tiny")
	frame, err := FrameOutbound(0x02, payload, 1024)
	require.NoError(t, err)

	r, w := io.Pipe()
	go func() {
		w.Write(frame)
		w.Close()
	}()
	in := NewPacketInputStream(r)
	defer in.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	id, body, err := ReadInboundFrame(ctx, in, true)
	require.NoError(t, err)
	assert.Equal(t, int32(0x02), id)
	assert.Equal(t, payload, body)
}
