// Package packet defines the Serverbound/Clientbound packet contracts,
// the (state, id) dispatch table, and the per-connection state every
// packet's Handle method reads and mutates. It lives below
// internal/conn (which drives the main loop) to avoid the import cycle
// the teacher's own packet/connection split works around the same way.
package packet

import (
	"context"
	"crypto/cipher"
	"crypto/rsa"
	"sync"

	"github.com/sirupsen/logrus"
)

// State is one node of the connection's protocol state machine.
type State int

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfiguration
	StatePlay
	StateClose
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "HANDSHAKE"
	case StateStatus:
		return "STATUS"
	case StateLogin:
		return "LOGIN"
	case StateConfiguration:
		return "CONFIGURATION"
	case StatePlay:
		return "PLAY"
	case StateClose:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}

// ClientInformation is the snapshot SClientInformation captures.
type ClientInformation struct {
	Locale              string
	ViewDistance         int8
	ChatMode             int32
	ChatColors           bool
	DisplayedSkinParts   byte
	MainHand             int32
	TextFiltering        bool
	AllowServerListings  bool
}

// EncryptionState guards the handshake's RSA keys, the negotiated AES
// ciphers, and the verify token under one mutex, so the flag and both
// cipher contexts install atomically — the invariant SPEC_FULL.md §5
// calls out by name.
type EncryptionState struct {
	mu         sync.Mutex
	Encrypted  bool
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
	VerifyToken []byte
	Encrypt    cipher.Stream
	Decrypt    cipher.Stream
}

// Lock/Unlock expose the guard directly since every field read alongside
// a write needs the same critical section (e.g. checking Encrypted while
// installing Encrypt/Decrypt).
func (e *EncryptionState) Lock()   { e.mu.Lock() }
func (e *EncryptionState) Unlock() { e.mu.Unlock() }

// ServerMeta is the advertised server identity used to build the
// status-ping JSON body. It is set once at connection creation from
// config and never mutated afterward, so it needs no lock of its own.
type ServerMeta struct {
	VersionName       string
	ProtocolVersion   int32
	Motd              string
	MaxPlayers        int
	FaviconBase64     string
	EnforceSecureChat bool
}

// PacketConnectionState is the per-connection mutable state every
// packet Handle method operates on. It is owned by the connection's
// dispatcher goroutine; the narrow sub-mutexes below are the only
// state shared with other goroutines (the reader goroutine and any
// caller of SendPacket).
type PacketConnectionState struct {
	ConnState State

	ClientIP        string
	Username        string
	UUID            [16]byte
	ConnectionID    int64
	UniqueMessageID int32

	CompressionThreshold int // -1 = disabled

	ServerID string

	// SessionServerBaseURL is the Mojang session-server endpoint used in
	// online mode; overridable so tests can point it at an httptest server.
	SessionServerBaseURL string

	Encryption EncryptionState

	clientInfoMu              sync.Mutex
	ClientInfo                ClientInformation
	ClientInformationReady    bool
	InitialConfigSent         bool

	OnlineMode bool

	Server ServerMeta

	Logger *logrus.Entry

	// Ctx is cancelled when the connection is interrupted (listener
	// shutdown or a fatal per-connection error), letting blocking reads
	// and session-server calls unwind promptly.
	Ctx context.Context
}

// SetClientInformation stores the client's settings packet snapshot and
// flips the ready flag under the client-info mutex.
func (s *PacketConnectionState) SetClientInformation(info ClientInformation) {
	s.clientInfoMu.Lock()
	defer s.clientInfoMu.Unlock()
	s.ClientInfo = info
	s.ClientInformationReady = true
}

// ClientInformationIsReady reports whether SClientInformation has
// landed yet.
func (s *PacketConnectionState) ClientInformationIsReady() bool {
	s.clientInfoMu.Lock()
	defer s.clientInfoMu.Unlock()
	return s.ClientInformationReady
}
