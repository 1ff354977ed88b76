// Package login implements the LOGIN-state handshake: username/UUID
// exchange, RSA/AES encryption negotiation, optional session-server
// verification, and the login-success reply that hands the connection
// to CONFIGURATION.
package login

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"fmt"

	"github.com/risusan87/mcpyserver/internal/buffer"
	"github.com/risusan87/mcpyserver/internal/mcrypto"
	"github.com/risusan87/mcpyserver/internal/packet"
	"github.com/risusan87/mcpyserver/internal/protoerr"
)

func init() {
	packet.Register(packet.StateLogin, 0x00, decodeLoginStart)
	packet.Register(packet.StateLogin, 0x01, decodeEncryptionResponse)
	packet.Register(packet.StateLogin, 0x02, decodeLoginPluginResponse)
	packet.Register(packet.StateLogin, 0x03, decodeLoginAcknowledged)
	packet.Register(packet.StateLogin, 0x04, decodeCookieResponse)
}

// Property is one entry of CLoginSuccess's property array — the shape
// the original's client_bound/login.py models but only ever fills with
// a single hardcoded "texture" entry; here it carries whatever the
// session server actually returned.
type Property struct {
	Name      string
	Value     string
	Signature string
}

// SLoginStart carries the client's chosen username. The UUID field is
// accepted but, per the Notchian server's actual behavior, not trusted —
// OfflineUUID or the session server's id wins instead.
type SLoginStart struct {
	Username string
	UUID     [16]byte
}

func (SLoginStart) PacketID() int32 { return 0x00 }

func decodeLoginStart(payload []byte) (packet.Serverbound, error) {
	b := buffer.Wrap(payload, buffer.BigEndian)
	b.Flip()
	username, err := b.ReadUTF8String(16)
	if err != nil {
		return nil, err
	}
	id, err := b.ReadUUID()
	if err != nil {
		return nil, err
	}
	return &SLoginStart{Username: username, UUID: id}, nil
}

// Handle generates the server's RSA key pair and verify token, stashes
// them on the connection's encryption state, and asks the client to
// encrypt a shared secret against them.
func (l *SLoginStart) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	state.Username = l.Username
	if !state.OnlineMode {
		state.UUID = mcrypto.OfflineUUID(l.Username)
	}

	priv, err := mcrypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	token := make([]byte, 4)
	if _, err := rand.Read(token); err != nil {
		return nil, fmt.Errorf("%w: generating verify token: %v", protoerr.ErrEncryption, err)
	}

	state.Encryption.Lock()
	state.Encryption.PrivateKey = priv
	state.Encryption.PublicKey = &priv.PublicKey
	state.Encryption.VerifyToken = token
	state.Encryption.Unlock()

	return &CEncryptionRequest{
		ServerID:           state.ServerID,
		PublicKey:          &priv.PublicKey,
		VerifyToken:        token,
		ShouldAuthenticate: state.OnlineMode,
	}, nil
}

// CEncryptionRequest asks the client to encrypt a shared secret (and
// the verify token) against the server's RSA public key.
type CEncryptionRequest struct {
	ServerID           string
	PublicKey          *rsa.PublicKey
	VerifyToken        []byte
	ShouldAuthenticate bool
}

func (CEncryptionRequest) PacketID() int32 { return 0x01 }

func (c *CEncryptionRequest) EncodeBody(state *packet.PacketConnectionState) ([]byte, error) {
	state.Encryption.Lock()
	pub := state.Encryption.PublicKey
	state.Encryption.Unlock()

	der, err := mcrypto.EncodePublicKeyDER(pub)
	if err != nil {
		return nil, err
	}

	b := buffer.New(buffer.BigEndian)
	if err := b.WriteUTF8String(c.ServerID, 20); err != nil {
		return nil, err
	}
	b.WriteVarInt(int32(len(der)))
	b.Write(der)
	b.WriteVarInt(int32(len(c.VerifyToken)))
	b.Write(c.VerifyToken)
	b.WriteBool(c.ShouldAuthenticate)
	return b.Bytes(), nil
}

// SEncryptionResponse carries the client's RSA-encrypted shared secret
// and verify token.
type SEncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (SEncryptionResponse) PacketID() int32 { return 0x01 }

func decodeEncryptionResponse(payload []byte) (packet.Serverbound, error) {
	b := buffer.Wrap(payload, buffer.BigEndian)
	b.Flip()
	secretLen, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	secret, err := b.Read(int(secretLen))
	if err != nil {
		return nil, err
	}
	tokenLen, err := b.ReadVarInt()
	if err != nil {
		return nil, err
	}
	token, err := b.Read(int(tokenLen))
	if err != nil {
		return nil, err
	}
	return &SEncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}

// Handle verifies the echoed verify token, decrypts the shared secret,
// installs the AES-CFB8 ciphers, and — in online mode — confirms the
// session with Mojang before replying with CLoginSuccess.
func (r *SEncryptionResponse) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	state.Encryption.Lock()
	priv := state.Encryption.PrivateKey
	wantToken := state.Encryption.VerifyToken
	state.Encryption.Unlock()

	gotToken, err := mcrypto.DecryptRSA(r.VerifyToken, priv)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(gotToken, wantToken) {
		return nil, fmt.Errorf("%w: verify token mismatch", protoerr.ErrEncryption)
	}

	sharedSecret, err := mcrypto.DecryptRSA(r.SharedSecret, priv)
	if err != nil {
		return nil, err
	}
	encrypt, decrypt, err := mcrypto.GenerateCiphers(sharedSecret)
	if err != nil {
		return nil, err
	}

	state.Encryption.Lock()
	state.Encryption.Encrypt = encrypt
	state.Encryption.Decrypt = decrypt
	state.Encryption.Encrypted = true
	pub := state.Encryption.PublicKey
	state.Encryption.Unlock()

	var properties []Property
	if state.OnlineMode {
		der, err := mcrypto.EncodePublicKeyDER(pub)
		if err != nil {
			return nil, err
		}
		hash := mcrypto.AuthHash(state.ServerID, sharedSecret, der)
		resp, err := mcrypto.CallSessionServer(state.Ctx, state.SessionServerBaseURL, state.Username, hash)
		if err != nil {
			return nil, err
		}
		id, err := parseMojangUUID(resp.ID)
		if err != nil {
			return nil, err
		}
		state.UUID = id
		state.Username = resp.Name
		for _, p := range resp.Properties {
			properties = append(properties, Property{Name: p.Name, Value: p.Value, Signature: p.Signature})
		}
	}

	return &CLoginSuccess{
		UUID:       state.UUID,
		Username:   state.Username,
		Properties: properties,
	}, nil
}

// parseMojangUUID parses the session server's dash-free 32-hex-digit id
// into a 16-byte UUID.
func parseMojangUUID(s string) ([16]byte, error) {
	var id [16]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 16 {
		return id, fmt.Errorf("%w: malformed session uuid %q", protoerr.ErrEncryption, s)
	}
	copy(id[:], raw)
	return id, nil
}

// CLoginSuccess completes the login handshake.
type CLoginSuccess struct {
	UUID       [16]byte
	Username   string
	Properties []Property
}

func (CLoginSuccess) PacketID() int32 { return 0x02 }

func (c *CLoginSuccess) EncodeBody(state *packet.PacketConnectionState) ([]byte, error) {
	b := buffer.New(buffer.BigEndian)
	b.WriteUUID(c.UUID)
	if err := b.WriteUTF8String(c.Username, 16); err != nil {
		return nil, err
	}
	b.WriteVarInt(int32(len(c.Properties)))
	for _, p := range c.Properties {
		if err := b.WriteUTF8String(p.Name, 32767); err != nil {
			return nil, err
		}
		if err := b.WriteUTF8String(p.Value, 32767); err != nil {
			return nil, err
		}
		if p.Signature != "" {
			b.WriteBool(true)
			if err := b.WriteUTF8String(p.Signature, 32767); err != nil {
				return nil, err
			}
		} else {
			b.WriteBool(false)
		}
	}
	return b.Bytes(), nil
}

// SLoginPluginResponse is accepted but not acted on — this server never
// sends a CLoginPluginRequest, so no client should ever produce one.
type SLoginPluginResponse struct{}

func (SLoginPluginResponse) PacketID() int32 { return 0x02 }
func decodeLoginPluginResponse([]byte) (packet.Serverbound, error) {
	return SLoginPluginResponse{}, nil
}
func (SLoginPluginResponse) Handle(*packet.PacketConnectionState) (packet.Clientbound, error) {
	return nil, nil
}

// SLoginAcknowledged transitions the connection to CONFIGURATION.
type SLoginAcknowledged struct{}

func (SLoginAcknowledged) PacketID() int32 { return 0x03 }
func decodeLoginAcknowledged([]byte) (packet.Serverbound, error) {
	return SLoginAcknowledged{}, nil
}
func (SLoginAcknowledged) Handle(state *packet.PacketConnectionState) (packet.Clientbound, error) {
	state.ConnState = packet.StateConfiguration
	return nil, nil
}

// SCookieResponse is accepted but not acted on — this server never
// requests a login-phase cookie.
type SCookieResponse struct{}

func (SCookieResponse) PacketID() int32 { return 0x04 }
func decodeCookieResponse([]byte) (packet.Serverbound, error) {
	return SCookieResponse{}, nil
}
func (SCookieResponse) Handle(*packet.PacketConnectionState) (packet.Clientbound, error) {
	return nil, nil
}
