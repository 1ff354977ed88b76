// Package mcrypto implements the handshake cryptography a client and
// server negotiate during login: RSA key exchange, AES-128/CFB8 packet
// encryption, the session-auth digest, and offline-mode UUID derivation.
package mcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"fmt"

	"github.com/risusan87/mcpyserver/internal/protoerr"
)

const rsaKeyBits = 1024

// GenerateKeyPair creates the server's 1024-bit RSA key pair used for
// the login encryption handshake.
func GenerateKeyPair() (*rsa.PrivateKey, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: generating RSA key: %v", protoerr.ErrEncryption, err)
	}
	return priv, nil
}

// EncodePublicKeyDER renders pub as an X.509 SubjectPublicKeyInfo DER
// blob, the form CEncryptionRequest sends to the client.
func EncodePublicKeyDER(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding public key: %v", protoerr.ErrEncryption, err)
	}
	return der, nil
}

// PaddingScheme selects the RSA padding DecryptRSA applies.
type PaddingScheme int

const (
	PaddingOAEPSHA1 PaddingScheme = iota
	PaddingPKCS1v15
)

// DefaultPadding is the scheme DecryptRSA uses: OAEP/SHA-1, matching
// every Notchian client's login encryption response. PKCS1v15 is
// implemented and tested for completeness but never selected by the
// login flow itself.
var DefaultPadding = PaddingOAEPSHA1

// DecryptRSA decrypts cipherText with priv using DefaultPadding.
func DecryptRSA(cipherText []byte, priv *rsa.PrivateKey) ([]byte, error) {
	return DecryptRSAWithScheme(cipherText, priv, DefaultPadding)
}

// DecryptRSAWithScheme decrypts cipherText with priv under the given
// padding scheme.
func DecryptRSAWithScheme(cipherText []byte, priv *rsa.PrivateKey, scheme PaddingScheme) ([]byte, error) {
	var out []byte
	var err error
	switch scheme {
	case PaddingOAEPSHA1:
		out, err = rsa.DecryptOAEP(sha1.New(), rand.Reader, priv, cipherText, nil)
	case PaddingPKCS1v15:
		out, err = rsa.DecryptPKCS1v15(rand.Reader, priv, cipherText)
	default:
		return nil, fmt.Errorf("%w: unknown padding scheme %d", protoerr.ErrEncryption, scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: RSA decrypt: %v", protoerr.ErrEncryption, err)
	}
	return out, nil
}

// GenerateCiphers derives the encrypt/decrypt AES-128/CFB8 stream pair
// from the 16-byte shared secret negotiated during login. Minecraft uses
// the shared secret as both key and IV.
func GenerateCiphers(sharedSecret []byte) (encrypt, decrypt cipher.Stream, err error) {
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: AES key: %v", protoerr.ErrEncryption, err)
	}
	return NewCFB8Encrypter(block, sharedSecret), NewCFB8Decrypter(block, sharedSecret), nil
}
