package play

import "github.com/risusan87/mcpyserver/internal/packet"

// Dispatcher is the seam a gameplay layer uses to replace a PLAY-state
// stub with real decode/handle logic, without internal/packet/play
// itself knowing anything about gameplay. Register overwrites whatever
// stub decoder occupies the given id.
type Dispatcher struct{}

func (Dispatcher) Register(id int32, dec packet.Decoder) {
	packet.Register(packet.StatePlay, id, dec)
}
