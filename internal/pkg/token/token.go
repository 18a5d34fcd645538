package token

import (
	"crypto/rand"
	"encoding/hex"
)

// Bytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const Bytes = 32

// New generates a cryptographically random opaque session token
func New() (string, error) {
	buf := make([]byte, Bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
