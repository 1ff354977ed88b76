// Package stream implements the framed byte streams each connection
// reads from and writes to: a background-fed input buffer, a
// write-then-flush output buffer, optional mid-stream AES-CFB8
// encryption, and the packet length/compression framing.
package stream

import (
	"context"
	"crypto/cipher"
	"fmt"
	"io"
	"sync"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

const readChunkSize = 1024

// PacketInputStream accumulates bytes read from a connection on a
// background goroutine (grounded in the teacher's bufio.Reader read
// loop and original_source's ConnectionInputStream._read_data thread)
// so callers can block for exactly the number of bytes they need
// without driving the socket read loop themselves.
type PacketInputStream struct {
	mu      sync.Mutex
	cond    *sync.Cond
	buf     *buffer.Buffer
	r       io.Reader
	decrypt cipher.Stream
	err     error
	closed  chan struct{}
	done    chan struct{}
}

// NewPacketInputStream starts the background read loop over r.
func NewPacketInputStream(r io.Reader) *PacketInputStream {
	s := &PacketInputStream{
		buf:    buffer.New(buffer.BigEndian),
		r:      r,
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.readLoop()
	return s
}

func (s *PacketInputStream) readLoop() {
	defer close(s.done)
	chunk := make([]byte, readChunkSize)
	for {
		n, err := s.r.Read(chunk)
		if n > 0 {
			data := make([]byte, n)
			copy(data, chunk[:n])
			s.mu.Lock()
			if s.decrypt != nil {
				s.decrypt.XORKeyStream(data, data)
			}
			s.buf.Write(data)
			s.cond.Broadcast()
			s.mu.Unlock()
		}
		if err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = fmt.Errorf("%w: %v", protoerr.ErrIO, err)
			}
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}
		select {
		case <-s.closed:
			return
		default:
		}
	}
}

// EnableEncryption switches every subsequently read chunk through
// decrypt. Bytes already buffered are left untouched, matching the
// protocol's guarantee that encryption only takes effect on the byte
// boundary immediately following CEncryptionResponse.
func (s *PacketInputStream) EnableEncryption(decrypt cipher.Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decrypt = decrypt
}

// Available reports the number of buffered, unread bytes.
func (s *PacketInputStream) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Remaining()
}

// Read blocks until n bytes are available, the stream errors, or ctx is
// canceled.
func (s *PacketInputStream) Read(ctx context.Context, n int) ([]byte, error) {
	waitDone := make(chan struct{})
	defer close(waitDone)
	go func() {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		case <-waitDone:
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.buf.Remaining() < n {
		if s.err != nil {
			return nil, s.err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.cond.Wait()
	}
	return s.buf.Read(n)
}

// Close tears down the background read goroutine.
func (s *PacketInputStream) Close() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	return nil
}
