package mcrypto

import (
	"context"
	"crypto/aes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rsaEncryptForTest(t *testing.T, pub *rsa.PublicKey, msg []byte) []byte {
	t.Helper()
	ct, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, msg, nil)
	require.NoError(t, err)
	return ct
}

func rsaEncryptPKCS1v15ForTest(t *testing.T, pub *rsa.PublicKey, msg []byte) []byte {
	t.Helper()
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, pub, msg)
	require.NoError(t, err)
	return ct
}

func TestRSAEncryptDecryptRoundTrip(t *testing.T) {
	priv, err := GenerateKeyPair()
	require.NoError(t, err)

	der, err := EncodePublicKeyDER(&priv.PublicKey)
	require.NoError(t, err)
	assert.NotEmpty(t, der)

	secret := make([]byte, 16)
	_, err = rand.Read(secret)
	require.NoError(t, err)

	// OAEP encrypt using the stdlib directly to avoid re-importing our
	// own decrypt path for the encrypt half.
	cipherText := rsaEncryptForTest(t, &priv.PublicKey, secret)

	plain, err := DecryptRSA(cipherText, priv)
	require.NoError(t, err)
	assert.Equal(t, secret, plain)
}

func TestRSADecryptPKCS1v15Scheme(t *testing.T) {
	priv, err := GenerateKeyPair()
	require.NoError(t, err)

	msg := []byte("0123456789abcdef")
	cipherText := rsaEncryptPKCS1v15ForTest(t, &priv.PublicKey, msg)

	plain, err := DecryptRSAWithScheme(cipherText, priv, PaddingPKCS1v15)
	require.NoError(t, err)
	assert.Equal(t, msg, plain)
}

func TestCFB8RoundTrip(t *testing.T) {
	secret := make([]byte, 16)
	_, err := rand.Read(secret)
	require.NoError(t, err)

	encBlock, err := aes.NewCipher(secret)
	require.NoError(t, err)
	decBlock, err := aes.NewCipher(secret)
	require.NoError(t, err)

	enc := NewCFB8Encrypter(encBlock, secret)
	dec := NewCFB8Decrypter(decBlock, secret)

	plain := []byte("the quick brown fox jumps over the lazy dog")
	cipherText := make([]byte, len(plain))
	enc.XORKeyStream(cipherText, plain)

	recovered := make([]byte, len(plain))
	dec.XORKeyStream(recovered, cipherText)

	assert.Equal(t, plain, recovered)
	assert.NotEqual(t, plain, cipherText)
}

func TestGenerateCiphersRoundTrip(t *testing.T) {
	secret := make([]byte, 16)
	_, err := rand.Read(secret)
	require.NoError(t, err)

	enc, dec, err := GenerateCiphers(secret)
	require.NoError(t, err)

	plain := []byte("packet payload bytes")
	cipherText := make([]byte, len(plain))
	enc.XORKeyStream(cipherText, plain)
	recovered := make([]byte, len(plain))
	dec.XORKeyStream(recovered, cipherText)
	assert.Equal(t, plain, recovered)
}

func TestAuthHashKnownVectors(t *testing.T) {
	// Vectors from wiki.vg's "Protocol Encryption" examples.
	assert.Equal(t, "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48", AuthHash("Notch", nil, nil))
	assert.Equal(t, "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1", AuthHash("jeb_", nil, nil))
	assert.Equal(t, "88e16a1019277b15d58faf0541e11910eb756f6", AuthHash("simon", nil, nil))
}

func TestOfflineUUIDIsDeterministic(t *testing.T) {
	a := OfflineUUID("Steve")
	b := OfflineUUID("Steve")
	assert.Equal(t, a, b)

	c := OfflineUUID("Alex")
	assert.NotEqual(t, a, c)
}

func TestCallSessionServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Steve", r.URL.Query().Get("username"))
		w.Write([]byte(`{"id":"abc123","name":"Steve","properties":[]}`))
	}))
	defer srv.Close()

	resp, err := CallSessionServer(context.Background(), srv.URL, "Steve", "somehash")
	require.NoError(t, err)
	assert.Equal(t, "Steve", resp.Name)
}

func TestCallSessionServerNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := CallSessionServer(context.Background(), srv.URL, "Steve", "somehash")
	assert.Error(t, err)
}
