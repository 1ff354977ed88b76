package packet

// Serverbound is a packet the client sends. Handle mutates the
// connection's state and optionally returns a clientbound reply to
// encode and flush back.
type Serverbound interface {
	PacketID() int32
	Handle(state *PacketConnectionState) (Clientbound, error)
}

// Clientbound is a packet the server sends. EncodeBody renders the
// packet's payload (without the leading packet id, which the framer
// writes separately).
type Clientbound interface {
	PacketID() int32
	EncodeBody(state *PacketConnectionState) ([]byte, error)
}
