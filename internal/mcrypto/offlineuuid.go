package mcrypto

import (
	"crypto/md5"

	uuid "github.com/satori/go.uuid"
)

// OfflineUUID derives the stable per-username UUID the Notchian server
// assigns in offline mode: an MD5 digest of "OfflinePlayer:<username>"
// with the version/variant bits overwritten to mark it as a (fake)
// version-3 UUID. Unlike uuid.NewV3, the Notchian algorithm hashes the
// label string directly with no namespace UUID mixed in, so the digest
// is computed by hand and only the resulting byte layout borrows the
// satori/go.uuid type.
func OfflineUUID(username string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	var id uuid.UUID
	copy(id[:], sum[:])
	return id
}
