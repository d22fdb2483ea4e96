// Package shared holds small helpers for random secrets and wiping
// sensitive bytes.
package shared

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns size random bytes hex-encoded, so the string is
// twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes b, e.g. a password read from the terminal once it
// has been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
