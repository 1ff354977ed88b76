// Package handshake implements the HANDSHAKE-state packet: the single
// packet every connection starts with, picking STATUS, LOGIN, or
// CONFIGURATION as the next state.
package handshake

import (
	"fmt"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/packet"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

func init() {
	packet.Register(packet.StateHandshake, 0x00, decodeHandshake)
}

// SHandshake is the client's opening packet.
type SHandshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

func (SHandshake) PacketID() int32 { return 0x00 }

func decodeHandshake(payload []byte) (packet.Serverbound, error) {
	b := buffer.Wrap(payload, buffer.BigEndian)
	b.Flip()

	protoVer, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	addr, err := b.ReadUTF8String(256)
	if err != nil {
		return nil, err
	}
	port, err := b.ReadU16()
	if err != nil {
		return nil, err
	}
	nextState, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return &SHandshake{
		ProtocolVersion: protoVer,
		ServerAddress:   addr,
		ServerPort:      port,
		NextState:       nextState,
	}, nil
}

// Handle selects the next connection state. Any next_state outside
// {1,2,3} is a protocol error (the Notchian server closes the
// connection immediately rather than replying).
func (h *SHandshake) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	switch h.NextState {
	case 1:
		state.ConnState = packet.StateStatus
	case 2:
		state.ConnState = packet.StateLogin
	case 3:
		state.ConnState = packet.StateConfiguration
	default:
		return nil, fmt.Errorf("%w: invalid next_state %d", protoerr.ErrProtocol, h.NextState)
	}
	return nil, nil
}
