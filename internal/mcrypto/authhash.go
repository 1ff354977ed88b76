package mcrypto

import (
	"crypto/sha1"
	"math/big"
)

// AuthHash computes Minecraft's session-auth server ID hash: a SHA-1
// digest over serverID (ASCII), sharedSecret, and the server's DER
// public key, interpreted as a signed big-endian integer and rendered
// as lowercase hex ("-" prefix for negative, no leading zeros) — the
// exact form sessionserver.mojang.com expects for serverId.
func AuthHash(serverID string, sharedSecret, publicDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicDER)
	digest := h.Sum(nil)
	return signedHexDigest(digest)
}

func signedHexDigest(digest []byte) string {
	negative := len(digest) > 0 && digest[0]&0x80 != 0
	if negative {
		digest = twosComplement(digest)
	}
	n := new(big.Int).SetBytes(digest)
	hexStr := n.Text(16)
	if negative {
		return "-" + hexStr
	}
	return hexStr
}

func twosComplement(b []byte) []byte {
	out := make([]byte, len(b))
	carry := true
	for i := len(b) - 1; i >= 0; i-- {
		out[i] = ^b[i]
		if carry {
			out[i]++
			carry = out[i] == 0
		}
	}
	return out
}
