package handshake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/packet"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

func encodeHandshakePayload(t *testing.T, protocolVersion, nextState int32) []byte {
	t.Helper()
	b := buffer.New(buffer.BigEndian)
	b.WriteVarInt(protocolVersion)
	require.NoError(t, b.WriteUTF8String("localhost", 256))
	b.WriteU16(25565)
	b.WriteVarInt(nextState)
	return b.Bytes()
}

func TestDecodeHandshake(t *testing.T) {
	payload := encodeHandshakePayload(t, 769, 1)

	sb, err := decodeHandshake(payload)
	require.NoError(t, err)

	hs, ok := sb.(*SHandshake)
	require.True(t, ok)
	require.Equal(t, int32(769), hs.ProtocolVersion)
	require.Equal(t, "localhost", hs.ServerAddress)
	require.Equal(t, uint16(25565), hs.ServerPort)
	require.Equal(t, int32(1), hs.NextState)
}

func TestHandleNextStateStatus(t *testing.T) {
	state := &packet.PacketConnectionState{}
	hs := &SHandshake{NextState: 1}

	reply, err := hs.Handle(state)
	require.NoError(t, err)
	require.Nil(t, reply)
	require.Equal(t, packet.StateStatus, state.ConnState)
}

func TestHandleNextStateLogin(t *testing.T) {
	state := &packet.PacketConnectionState{}
	hs := &SHandshake{NextState: 2}

	_, err := hs.Handle(state)
	require.NoError(t, err)
	require.Equal(t, packet.StateLogin, state.ConnState)
}

func TestHandleNextStateConfiguration(t *testing.T) {
	state := &packet.PacketConnectionState{}
	hs := &SHandshake{NextState: 3}

	_, err := hs.Handle(state)
	require.NoError(t, err)
	require.Equal(t, packet.StateConfiguration, state.ConnState)
}

func TestHandleInvalidNextStateIsProtocolError(t *testing.T) {
	state := &packet.PacketConnectionState{ConnState: packet.StateHandshake}
	hs := &SHandshake{NextState: 99}

	_, err := hs.Handle(state)
	require.Error(t, err)
	require.True(t, errors.Is(err, protoerr.ErrProtocol))
	// the connection state is left untouched on an invalid next_state
	require.Equal(t, packet.StateHandshake, state.ConnState)
}
