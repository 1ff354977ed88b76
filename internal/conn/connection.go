// Package conn drives one accepted socket through its entire protocol
// lifetime: framing, dispatch, the CONFIGURATION handshake, and
// server-initiated bundles. Grounded on original_source's
// ConnectionHandler/PacketConnection pair and the teacher's own
// handleConnection goroutine-per-socket shape, generalized from a
// single fixed packet flow to the full state-machine dispatch table in
// internal/packet.
package conn

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/risusan87/mcpyserver/internal/packet"
	"github.com/risusan87/mcpyserver/internal/packet/configuration"
	"github.com/risusan87/mcpyserver/internal/protoerr"
	"github.com/risusan87/mcpyserver/internal/stream"
)

const idlePollInterval = 10 * time.Millisecond

const maxBundleEntries = 4096

// InitialConfigHook builds the clientbound packets a fresh connection
// receives once its client settings have landed, in place of the
// original's direct (and cyclic) import of the gameplay package.
type InitialConfigHook func(state *packet.PacketConnectionState) []packet.Clientbound

// Connection owns one accepted socket's reader/dispatcher pair and the
// packet state machine that drives it.
type Connection struct {
	id       int64
	conn     net.Conn
	in       *stream.PacketInputStream
	out      *stream.PacketOutputStream
	state    *packet.PacketConnectionState
	hook     InitialConfigHook
	stopped  atomic.Bool
	done     chan struct{}
	cancel   context.CancelFunc

	sendMu sync.Mutex // serializes SendPacket callers against each other

	bundleMu    sync.Mutex
	bundleCond  *sync.Cond
	bundle      []packet.Clientbound
	response    packet.Serverbound
	responseErr error
	haveResp    bool
}

// New wires a freshly-accepted socket into a Connection. The returned
// value is not yet running — call Serve to start its dispatcher loop.
func New(id int64, nc net.Conn, onlineMode bool, compressionThreshold int, server packet.ServerMeta, sessionServerBaseURL string, hook InitialConfigHook, logger *logrus.Entry) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	host, _, _ := net.SplitHostPort(nc.RemoteAddr().String())

	st := &packet.PacketConnectionState{
		ConnState:            packet.StateHandshake,
		ClientIP:             host,
		ConnectionID:         id,
		CompressionThreshold: compressionThreshold,
		OnlineMode:           onlineMode,
		Server:               server,
		SessionServerBaseURL: sessionServerBaseURL,
		Logger:               logger.WithField("conn", id),
		Ctx:                  ctx,
	}

	c := &Connection{
		id:     id,
		conn:   nc,
		in:     stream.NewPacketInputStream(nc),
		out:    stream.NewPacketOutputStream(nc),
		state:  st,
		hook:   hook,
		done:   make(chan struct{}),
		cancel: cancel,
	}
	c.bundleCond = sync.NewCond(&c.bundleMu)
	return c
}

// ID is the connection id assigned by the listener.
func (c *Connection) ID() int64 { return c.id }

// Interrupt requests the dispatcher loop stop at its next check.
func (c *Connection) Interrupt() {
	c.stopped.Store(true)
	c.cancel()
	c.bundleMu.Lock()
	c.bundleCond.Broadcast()
	c.bundleMu.Unlock()
}

// Wait blocks until the dispatcher loop has exited and the socket is
// closed.
func (c *Connection) Wait() { <-c.done }

// Serve runs the connection's dispatcher loop until CLOSE, an
// unrecoverable error, or Interrupt. It must be called from its own
// goroutine; it returns once torn down.
func (c *Connection) Serve() {
	defer c.teardown()
	for {
		if c.stopped.Load() || c.state.ConnState == packet.StateClose {
			return
		}
		if c.in.Available() > 0 {
			if !c.dispatchOne() {
				return
			}
			continue
		}
		if c.state.ConnState == packet.StateConfiguration &&
			c.state.ClientInformationIsReady() && !c.state.InitialConfigSent {
			if !c.runInitialConfig() {
				return
			}
			continue
		}
		if c.drainBundle() {
			continue
		}
		time.Sleep(idlePollInterval)
	}
}

// dispatchOne decodes and handles exactly one inbound frame, flushing
// any reply it produces. It returns false if the connection must tear
// down.
func (c *Connection) dispatchOne() bool {
	id, payload, err := stream.ReadInboundFrame(c.state.Ctx, c.in, c.state.CompressionThreshold >= 0)
	if err != nil {
		c.logErr("reading frame", err)
		return false
	}
	c.state.Encryption.Lock()
	wasEncrypted := c.state.Encryption.Encrypted
	c.state.Encryption.Unlock()
	reply, err := c.handleFrame(id, payload)
	if err != nil {
		c.logErr("handling packet", err)
		return false
	}
	// Once a Handle has just switched encryption on, route every later byte
	// (including this reply) through the negotiated ciphers.
	c.state.Encryption.Lock()
	if !wasEncrypted && c.state.Encryption.Encrypted {
		c.in.EnableEncryption(c.state.Encryption.Decrypt)
		c.out.EnableEncryption(c.state.Encryption.Encrypt)
	}
	c.state.Encryption.Unlock()
	if reply != nil {
		if err := c.sendOne(reply); err != nil {
			c.logErr("sending reply", err)
			return false
		}
	}
	return true
}

func (c *Connection) handleFrame(id int32, payload []byte) (packet.Clientbound, error) {
	dec, err := packet.Lookup(c.state.ConnState, id)
	if err != nil {
		return nil, err
	}
	sb, err := dec(payload)
	if err != nil {
		return nil, err
	}
	return sb.Handle(c.state)
}

// runInitialConfig emits the hook's packets plus CFinishConfiguration,
// then synchronously reads the client's next frame. That frame must be
// the finish-configuration acknowledgement, whose Handle moves the
// connection to PLAY; any other packet is a protocol error and the
// connection is torn down.
func (c *Connection) runInitialConfig() bool {
	var pkts []packet.Clientbound
	if c.hook != nil {
		pkts = c.hook(c.state)
	}
	pkts = append(pkts, configuration.CFinishConfiguration{})
	for _, p := range pkts {
		if err := c.sendOne(p); err != nil {
			c.logErr("sending initial configuration", err)
			return false
		}
	}
	c.state.InitialConfigSent = true

	id, payload, err := stream.ReadInboundFrame(c.state.Ctx, c.in, c.state.CompressionThreshold >= 0)
	if err != nil {
		c.logErr("reading configuration ack", err)
		return false
	}
	if id != (configuration.SFinishConfigurationAck{}).PacketID() {
		c.logErr("reading configuration ack", fmt.Errorf("%w: expected finish configuration ack, got packet 0x%02x", protoerr.ErrProtocol, id))
		return false
	}
	if _, err := c.handleFrame(id, payload); err != nil {
		c.logErr("handling configuration ack", err)
		return false
	}
	return true
}

// sendOne encodes, frames, and flushes a single clientbound packet.
func (c *Connection) sendOne(p packet.Clientbound) error {
	body, err := p.EncodeBody(c.state)
	if err != nil {
		return err
	}
	frame, err := stream.FrameOutbound(p.PacketID(), body, c.state.CompressionThreshold)
	if err != nil {
		return err
	}
	c.out.Write(frame)
	return c.out.Flush()
}

// SendPacket enqueues a server-initiated bundle and blocks until the
// dispatcher loop transmits it and captures the client's next reply.
// FIFO ordering is promised within one call; across calls, ordering is
// first-come first-served against whichever caller's bundle the loop
// picks up next.
func (c *Connection) SendPacket(pkts ...packet.Clientbound) (packet.Serverbound, error) {
	if len(pkts) > maxBundleEntries {
		return nil, fmt.Errorf("%w: bundle of %d exceeds max %d entries", protoerr.ErrProtocol, len(pkts), maxBundleEntries)
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.bundleMu.Lock()
	c.bundle = append(c.bundle, pkts...)
	c.haveResp = false
	c.response = nil
	c.responseErr = nil
	for !c.haveResp && !c.stopped.Load() {
		c.bundleCond.Wait()
	}
	resp, respErr := c.response, c.responseErr
	c.bundleMu.Unlock()
	if c.stopped.Load() && !c.haveResp {
		return nil, fmt.Errorf("%w: connection closed while awaiting bundle response", protoerr.ErrIO)
	}
	return resp, respErr
}

// drainBundle sends any queued server-initiated packets, reads the
// client's single response frame, and wakes any SendPacket caller.
// It reports whether it did any work, so the caller can avoid sleeping
// on an otherwise-idle iteration.
func (c *Connection) drainBundle() bool {
	c.bundleMu.Lock()
	if len(c.bundle) == 0 {
		c.bundleMu.Unlock()
		return false
	}
	queued := c.bundle
	c.bundle = nil
	c.bundleMu.Unlock()

	for _, p := range queued {
		if err := c.sendOne(p); err != nil {
			c.signalBundleResponse(nil, err)
			return true
		}
	}

	id, payload, err := stream.ReadInboundFrame(c.state.Ctx, c.in, c.state.CompressionThreshold >= 0)
	if err != nil {
		c.signalBundleResponse(nil, err)
		return true
	}
	dec, err := packet.Lookup(c.state.ConnState, id)
	if err != nil {
		c.signalBundleResponse(nil, err)
		return true
	}
	sb, err := dec(payload)
	c.signalBundleResponse(sb, err)
	return true
}

func (c *Connection) signalBundleResponse(resp packet.Serverbound, err error) {
	c.bundleMu.Lock()
	c.response = resp
	c.responseErr = err
	c.haveResp = true
	c.bundleCond.Broadcast()
	c.bundleMu.Unlock()
}

func (c *Connection) logErr(action string, err error) {
	if c.state.Logger != nil {
		c.state.Logger.WithError(err).Warnf("connection: %s", action)
	}
}

func (c *Connection) teardown() {
	c.cancel()
	c.in.Close()
	c.conn.Close()
	c.bundleMu.Lock()
	c.stopped.Store(true)
	c.bundleCond.Broadcast()
	c.bundleMu.Unlock()
	close(c.done)
}
