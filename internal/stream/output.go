package stream

import (
	"crypto/cipher"
	"fmt"
	"io"
	"sync"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// PacketOutputStream buffers outbound bytes until Flush pushes them to
// the underlying writer, optionally through an AES-CFB8 encrypt cipher.
// There is no background goroutine on the write side — writes are
// caller-driven, matching original_source's ConnectionOutputStream
// (no dedicated output thread, only a buffer + flush).
type PacketOutputStream struct {
	mu      sync.Mutex
	buf     *buffer.Buffer
	w       io.Writer
	encrypt cipher.Stream
}

// NewPacketOutputStream wraps w for buffered, optionally-encrypted
// writes.
func NewPacketOutputStream(w io.Writer) *PacketOutputStream {
	return &PacketOutputStream{
		buf: buffer.New(buffer.BigEndian),
		w:   w,
	}
}

// EnableEncryption switches Flush to push buffered bytes through
// encrypt from this point on.
func (s *PacketOutputStream) EnableEncryption(encrypt cipher.Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encrypt = encrypt
}

// Write appends data to the pending output buffer.
func (s *PacketOutputStream) Write(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Write(data)
}

// Flush sends every buffered byte to the underlying writer and clears
// the buffer.
func (s *PacketOutputStream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.buf.Bytes()
	if len(pending) == 0 {
		return nil
	}
	out := make([]byte, len(pending))
	copy(out, pending)
	if s.encrypt != nil {
		s.encrypt.XORKeyStream(out, out)
	}
	if _, err := s.w.Write(out); err != nil {
		return fmt.Errorf("%w: %v", protoerr.ErrIO, err)
	}
	s.buf = buffer.New(buffer.BigEndian)
	return nil
}
