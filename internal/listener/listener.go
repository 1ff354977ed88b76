// Package listener accepts TCP connections and hands each one to
// internal/conn. Grounded on original_source's ConnectionListener
// (accept loop with a 1s socket timeout so the stop flag is polled
// promptly, a mutex-guarded connection slice, interrupt-then-join
// shutdown) reworked into Go's goroutine/net.Listener idiom.
package listener

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/risusan87/mcpyserver/internal/conn"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

const acceptPollInterval = time.Second

// ConnectionFactory builds a Connection for a freshly-accepted socket,
// assigning it the given connection id.
type ConnectionFactory func(id int64, nc net.Conn) *conn.Connection

// Listener owns the bound TCP socket and the set of live connections it
// has accepted.
type Listener struct {
	ln      *net.TCPListener
	factory ConnectionFactory
	logger  *logrus.Entry

	mu      sync.Mutex
	conns   []*conn.Connection
	nextID  int64
	stopped atomic.Bool
	done    chan struct{}
}

// Listen binds address (e.g. "0.0.0.0:25565") with SO_REUSEADDR set via
// net.ListenConfig.Control, matching the teacher's "rebind fast after
// restart" expectation without hand-rolling a raw syscall.Socket call.
func Listen(address string, factory ConnectionFactory, logger *logrus.Entry) (*Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, addr string, c syscall.RawConn) error {
			var setErr error
			err := c.Control(func(fd uintptr) {
				setErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return setErr
		},
	}
	raw, err := lc.Listen(context.Background(), "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: binding %s: %v", protoerr.ErrIO, address, err)
	}
	tcpLn, ok := raw.(*net.TCPListener)
	if !ok {
		raw.Close()
		return nil, fmt.Errorf("%w: expected *net.TCPListener", protoerr.ErrIO)
	}
	return &Listener{
		ln:      tcpLn,
		factory: factory,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Serve runs the accept loop until Shutdown is called. It blocks; run
// it from its own goroutine.
func (l *Listener) Serve() {
	defer close(l.done)
	l.logger.Info("listening for connections")
	for {
		if l.stopped.Load() {
			break
		}
		l.ln.SetDeadline(time.Now().Add(acceptPollInterval))
		nc, err := l.ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if l.stopped.Load() {
				break
			}
			l.logger.WithError(err).Warn("accept failed")
			continue
		}

		l.mu.Lock()
		id := l.nextID
		l.nextID++
		c := l.factory(id, nc)
		l.conns = append(l.conns, c)
		l.mu.Unlock()

		go c.Serve()
	}

	l.logger.Info("connection listener shutting down")
	l.mu.Lock()
	conns := l.conns
	l.mu.Unlock()
	for _, c := range conns {
		c.Interrupt()
	}
	for _, c := range conns {
		c.Wait()
	}
	l.mu.Lock()
	l.conns = nil
	l.mu.Unlock()
	l.ln.Close()
	l.logger.Info("listener terminated")
}

// Shutdown sets the stop flag; Serve returns once every connection has
// been interrupted and joined.
func (l *Listener) Shutdown() {
	l.stopped.Store(true)
}

// Wait blocks until Serve has fully torn down.
func (l *Listener) Wait() { <-l.done }
