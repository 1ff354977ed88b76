package packet

import (
	"fmt"
	"sync"

	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Decoder parses a packet's raw payload (the frame body minus its
// VarInt packet id) into a typed Serverbound value.
type Decoder func(payload []byte) (Serverbound, error)

type tableKey struct {
	state State
	id    int32
}

var (
	tableMu sync.RWMutex
	table   = make(map[tableKey]Decoder)
)

// Register replaces the teacher's class-registry dynamic dispatch
// (SPEC_FULL.md §9) with a static map keyed by (state, id). Packet
// subpackages call this from an init() func so importing a subpackage
// is what wires its packets into the dispatch table — an unimported
// subpackage contributes nothing, matching Go's usual registry idiom
// (database/sql drivers, image decoders).
func Register(state State, id int32, dec Decoder) {
	tableMu.Lock()
	defer tableMu.Unlock()
	table[tableKey{state, id}] = dec
}

// Lookup resolves the decoder for (state, id). A recognized state with
// no matching id returns ErrUnsupportedPacket, not ErrProtocol — the
// frame itself was well-formed.
func Lookup(state State, id int32) (Decoder, error) {
	tableMu.RLock()
	dec, ok := table[tableKey{state, id}]
	tableMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: state=%s id=0x%02x", protoerr.ErrUnsupportedPacket, state, id)
	}
	return dec, nil
}
