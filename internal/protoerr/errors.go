// Package protoerr defines the sentinel error taxonomy shared by every
// protocol-facing package. Callers distinguish failure classes with
// errors.Is instead of type switches on panics.
package protoerr

import "errors"

var (
	// ErrProtocol covers malformed frames, packets unexpected for the
	// current connection state, bad next_state values, over-long VarInts,
	// and bundle size violations.
	ErrProtocol = errors.New("protocol error")

	// ErrDataCorrupted covers a structurally well-formed frame whose typed
	// decode failed (bad UTF-8, out-of-range values).
	ErrDataCorrupted = errors.New("data corrupted")

	// ErrBufferUnderflow is returned by buffer reads past the end of data.
	ErrBufferUnderflow = errors.New("buffer underflow")

	// ErrOutOfRange is returned by typed writes whose value doesn't fit
	// the target wire width.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidPosition is returned by Seek to an out-of-bounds offset.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidMark is returned by Reset when no Mark was set.
	ErrInvalidMark = errors.New("invalid mark")

	// ErrEncryption covers verify-token mismatches, RSA decrypt failures,
	// and non-200 session-server responses.
	ErrEncryption = errors.New("encryption error")

	// ErrUnknownTagID is returned by the NBT decoder for an unregistered
	// tag id.
	ErrUnknownTagID = errors.New("unknown NBT tag id")

	// ErrInvalidValue is returned by NBT tag constructors on a range or
	// type-check failure.
	ErrInvalidValue = errors.New("invalid NBT value")

	// ErrInvalidUTF8 is returned when a name or string fails UTF-8/UTF-16
	// validation.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrUnsupportedPacket is returned for a packet id with no registered
	// decoder in the connection's current state.
	ErrUnsupportedPacket = errors.New("unsupported packet")

	// ErrIO wraps socket/file errors surfaced at the protocol boundary.
	ErrIO = errors.New("io error")
)
