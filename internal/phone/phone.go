// Package phone provides hashing and masking helpers for phone numbers.
package phone

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns a deterministic one-way digest of a phone number, used as
// a non-reversible lookup and dedup key.
func Hash(number string) string {
	sum := sha256.Sum256([]byte(number))
	return hex.EncodeToString(sum[:])
}

// Mask returns a display-safe form of a phone number: the first three
// characters, a separator, and the last four. Inputs shorter than four
// characters are returned unchanged.
func Mask(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[:3] + " •••• " + number[len(number)-4:]
}
