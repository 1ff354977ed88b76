package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/packet"
)

func TestDecodeClientInformationAndHandle(t *testing.T) {
	b := buffer.New(buffer.BigEndian)
	require.NoError(t, b.WriteUTF8String("en_US", 16))
	b.WriteI8(10)
	b.WriteVarInt(0)
	b.WriteBool(true)
	b.WriteU8(0x7f)
	b.WriteVarInt(1)
	b.WriteBool(false)
	b.WriteBool(true)

	sb, err := decodeClientInformation(b.Bytes())
	require.NoError(t, err)

	ci, ok := sb.(*SClientInformation)
	require.True(t, ok)
	require.Equal(t, "en_US", ci.Locale)
	require.Equal(t, int8(10), ci.ViewDistance)
	require.Equal(t, byte(0x7f), ci.DisplayedSkinParts)

	state := &packet.PacketConnectionState{}
	require.False(t, state.ClientInformationIsReady())

	_, err = ci.Handle(state)
	require.NoError(t, err)
	require.True(t, state.ClientInformationIsReady())
}

func TestFinishConfigurationAckTransitionsToPlay(t *testing.T) {
	state := &packet.PacketConnectionState{ConnState: packet.StateConfiguration}

	_, err := (SFinishConfigurationAck{}).Handle(state)
	require.NoError(t, err)
	require.Equal(t, packet.StatePlay, state.ConnState)
}

func TestCKnownPacksEncodesEmptyManifest(t *testing.T) {
	body, err := (CKnownPacks{}).EncodeBody(nil)
	require.NoError(t, err)

	b := buffer.Wrap(body, buffer.BigEndian)
	b.Flip()
	count, err := b.ReadVarInt()
	require.NoError(t, err)
	require.Equal(t, int32(0), count)
}
