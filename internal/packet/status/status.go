// Package status implements the STATUS-state packets: the server-list
// ping exchange (status request/response, then ping/pong and close).
package status

import (
	"encoding/json"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/packet"
)

func init() {
	packet.Register(packet.StateStatus, 0x00, decodeStatusRequest)
	packet.Register(packet.StateStatus, 0x01, decodePingRequest)
}

// SStatusRequest asks for the server-list ping JSON body.
type SStatusRequest struct{}

func (SStatusRequest) PacketID() int32 { return 0x00 }

func decodeStatusRequest([]byte) (packet.Serverbound, error) {
	return SStatusRequest{}, nil
}

// statusResponseBody mirrors the Notchian server-list ping JSON shape.
type statusResponseBody struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int            `json:"max"`
		Online int            `json:"online"`
		Sample []SamplePlayer `json:"sample"`
	} `json:"players"`
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
	Favicon           string `json:"favicon,omitempty"`
	EnforceSecureChat bool   `json:"enforcesSecureChat"`
}

// SamplePlayer is one entry of the status response's player sample list.
type SamplePlayer struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Handle always replies with the server's advertised status; the
// gameplay layer's live player count/sample would plug in via a
// collaborator interface, but this loader has no player registry of its
// own to query.
func (SStatusRequest) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	return &CStatusResponse{
		VersionName:       state.Server.VersionName,
		ProtocolVersion:   state.Server.ProtocolVersion,
		MaxPlayers:        state.Server.MaxPlayers,
		OnlinePlayers:     0,
		Sample:            []SamplePlayer{},
		Description:       state.Server.Motd,
		Favicon:           state.Server.FaviconBase64,
		EnforceSecureChat: state.Server.EnforceSecureChat,
	}, nil
}

// CStatusResponse carries the server-list ping JSON body.
type CStatusResponse struct {
	VersionName       string
	ProtocolVersion   int32
	MaxPlayers        int
	OnlinePlayers     int
	Sample            []SamplePlayer
	Description       string
	Favicon           string
	EnforceSecureChat bool
}

func (CStatusResponse) PacketID() int32 { return 0x00 }

func (c *CStatusResponse) EncodeBody(state *packet.PacketConnectionState) ([]byte, error) {
	body := statusResponseBody{}
	body.Version.Name = c.VersionName
	body.Version.Protocol = c.ProtocolVersion
	body.Players.Max = c.MaxPlayers
	body.Players.Online = c.OnlinePlayers
	body.Players.Sample = c.Sample
	if body.Players.Sample == nil {
		body.Players.Sample = []SamplePlayer{}
	}
	body.Description.Text = c.Description
	body.Favicon = c.Favicon
	body.EnforceSecureChat = c.EnforceSecureChat

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	b := buffer.New(buffer.BigEndian)
	if err := b.WriteUTF8String(string(raw), 32767); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// SPingRequest carries an opaque client timestamp to echo back.
type SPingRequest struct {
	Timestamp int64
}

func (SPingRequest) PacketID() int32 { return 0x01 }

func decodePingRequest(payload []byte) (packet.Serverbound, error) {
	b := buffer.Wrap(payload, buffer.BigEndian)
	b.Flip()
	ts, err := b.ReadI64()
	if err != nil {
		return nil, err
	}
	return &SPingRequest{Timestamp: ts}, nil
}

// Handle replies with the echoed timestamp and closes the connection —
// STATUS is always a one-shot exchange.
func (p *SPingRequest) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	state.ConnState = packet.StateClose
	return &CPongResponse{Timestamp: p.Timestamp}, nil
}

// CPongResponse echoes the client's ping timestamp.
type CPongResponse struct {
	Timestamp int64
}

func (CPongResponse) PacketID() int32 { return 0x01 }

func (p *CPongResponse) EncodeBody(state *packet.PacketConnectionState) ([]byte, error) {
	b := buffer.New(buffer.BigEndian)
	b.WriteI64(p.Timestamp)
	return b.Bytes(), nil
}
