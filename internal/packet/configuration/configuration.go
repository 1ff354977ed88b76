// Package configuration implements the CONFIGURATION-state packets:
// client settings capture and the handshake that ends with
// CFinishConfiguration, moving the connection into PLAY. Most packets
// in this state (resource packs, registry sync, feature flags) carry no
// server-side behavior here and are registered as inert stubs, matching
// how little the original models this state beyond its one real
// transition.
package configuration

import (
	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/packet"
)

func init() {
	packet.Register(packet.StateConfiguration, 0x00, decodeClientInformation)
	packet.Register(packet.StateConfiguration, 0x01, decodeCookieResponse)
	packet.Register(packet.StateConfiguration, 0x02, decodePluginMessage)
	packet.Register(packet.StateConfiguration, 0x03, decodeFinishConfigurationAck)
	packet.Register(packet.StateConfiguration, 0x04, decodeKeepAlive)
	packet.Register(packet.StateConfiguration, 0x05, decodePongResponse)
	packet.Register(packet.StateConfiguration, 0x06, decodeResourcePackResponse)
	packet.Register(packet.StateConfiguration, 0x07, decodeKnownPacks)
}

// SClientInformation carries the client's locale, render distance, and
// chat/skin preferences.
type SClientInformation struct {
	Locale              string
	ViewDistance        int8
	ChatMode            int32
	ChatColors          bool
	DisplayedSkinParts  byte
	MainHand            int32
	TextFiltering       bool
	AllowServerListings bool
}

func (SClientInformation) PacketID() int32 { return 0x00 }

func decodeClientInformation(payload []byte) (packet.Serverbound, error) {
	b := buffer.Wrap(payload, buffer.BigEndian)
	b.Flip()
	locale, err := b.ReadUTF8String(16)
	if err != nil {
		return nil, err
	}
	viewDist, err := b.ReadI8()
	if err != nil {
		return nil, err
	}
	chatMode, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	chatColors, err := b.ReadBool()
	if err != nil {
		return nil, err
	}
	skinParts, err := b.ReadU8()
	if err != nil {
		return nil, err
	}
	mainHand, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	textFiltering, err := b.ReadBool()
	if err != nil {
		return nil, err
	}
	allowListings, err := b.ReadBool()
	if err != nil {
		return nil, err
	}
	return &SClientInformation{
		Locale:              locale,
		ViewDistance:        viewDist,
		ChatMode:            chatMode,
		ChatColors:          chatColors,
		DisplayedSkinParts:  skinParts,
		MainHand:            mainHand,
		TextFiltering:       textFiltering,
		AllowServerListings: allowListings,
	}, nil
}

// Handle stashes the client's settings for later consumption (e.g. by
// PLAY packets that need render distance or skin layer visibility).
func (c *SClientInformation) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	state.SetClientInformation(packet.ClientInformation{
		Locale:              c.Locale,
		ViewDistance:        c.ViewDistance,
		ChatMode:            c.ChatMode,
		ChatColors:          c.ChatColors,
		DisplayedSkinParts:  c.DisplayedSkinParts,
		MainHand:            c.MainHand,
		TextFiltering:       c.TextFiltering,
		AllowServerListings: c.AllowServerListings,
	})
	return nil, nil
}

// stub is a server-bound packet this server accepts but never acts on.
type stub struct{ id int32 }

func (s stub) PacketID() int32 { return s.id }
func (stub) Handle(*packet.PacketConnectionState) (packet.Clientbound, error) {
	return nil, nil
}

func decodeCookieResponse([]byte) (packet.Serverbound, error)        { return stub{0x01}, nil }
func decodePluginMessage([]byte) (packet.Serverbound, error)         { return stub{0x02}, nil }
func decodeKeepAlive([]byte) (packet.Serverbound, error)             { return stub{0x04}, nil }
func decodePongResponse([]byte) (packet.Serverbound, error)          { return stub{0x05}, nil }
func decodeResourcePackResponse([]byte) (packet.Serverbound, error)  { return stub{0x06}, nil }
func decodeKnownPacks([]byte) (packet.Serverbound, error)            { return stub{0x07}, nil }

// SFinishConfigurationAck ends CONFIGURATION and moves to PLAY.
type SFinishConfigurationAck struct{}

func (SFinishConfigurationAck) PacketID() int32 { return 0x03 }

func decodeFinishConfigurationAck([]byte) (packet.Serverbound, error) {
	return SFinishConfigurationAck{}, nil
}

func (SFinishConfigurationAck) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	state.ConnState = packet.StatePlay
	return nil, nil
}

// CFinishConfiguration is the server's signal to enter PLAY. Its body
// is empty; the packet id alone carries the meaning.
type CFinishConfiguration struct{}

func (CFinishConfiguration) PacketID() int32 { return 0x03 }

func (CFinishConfiguration) EncodeBody(*packet.PacketConnectionState) ([]byte, error) {
	return nil, nil
}

// CKnownPacks is the server's registry-pack manifest, sent empty — this
// server relies entirely on the client's built-in vanilla data.
type CKnownPacks struct{}

func (CKnownPacks) PacketID() int32 { return 0x07 }

func (CKnownPacks) EncodeBody(*packet.PacketConnectionState) ([]byte, error) {
	b := buffer.New(buffer.BigEndian)
	b.WriteVarInt(0)
	return b.Bytes(), nil
}
