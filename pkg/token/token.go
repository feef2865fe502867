package token

import (
	"crypto/rand"
	"encoding/hex"
)

// New returns a 64-char lowercase hex token (32 random bytes). Used for
// session tokens and generated file names.
func New() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
