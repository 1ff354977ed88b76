package conn

import (
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/risusan87/mcpyserver/internal/buffer"
	_ "github.com/risusan87/mcpyserver/internal/packet/handshake"
	"github.com/risusan87/mcpyserver/internal/packet"
	_ "github.com/risusan87/mcpyserver/internal/packet/status"
)

func testLogger() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func writeFrame(t *testing.T, w net.Conn, packetID int32, body []byte) {
	t.Helper()
	b := buffer.New(buffer.BigEndian)
	b.WriteVarInt(packetID)
	b.Write(body)
	outer := buffer.New(buffer.BigEndian)
	outer.WriteVarInt(int32(len(b.Bytes())))
	outer.Write(b.Bytes())
	_, err := w.Write(outer.Bytes())
	require.NoError(t, err)
}

// TestServeHandshakeToStatusRoundTrip drives a connection through the
// handshake into STATUS and checks that a reply comes back to the
// status request.
func TestServeHandshakeToStatusRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	c := New(1, server, false, -1, packet.ServerMeta{
		VersionName:     "1.21.4",
		ProtocolVersion: 769,
		MaxPlayers:      20,
		Motd:            "test server",
	}, "", nil, testLogger())
	go c.Serve()
	defer c.Interrupt()

	// SHandshake: protocol version, server address, port, next_state=1 (STATUS)
	hs := buffer.New(buffer.BigEndian)
	hs.WriteVarInt(769)
	require.NoError(t, hs.WriteUTF8String("localhost", 256))
	hs.WriteU16(25565)
	hs.WriteVarInt(1)
	writeFrame(t, client, 0x00, hs.Bytes())

	// SStatusRequest: empty body
	writeFrame(t, client, 0x00, nil)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	resp := make([]byte, 4096)
	n, err := client.Read(resp)
	require.NoError(t, err)
	require.Greater(t, n, 0)
}

func TestSendPacketRejectsOversizedBundle(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := New(2, server, false, -1, packet.ServerMeta{}, "", nil, testLogger())

	pkts := make([]packet.Clientbound, maxBundleEntries+1)
	_, err := c.SendPacket(pkts...)
	require.Error(t, err)
}
