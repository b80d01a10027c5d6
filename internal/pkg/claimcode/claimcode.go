// internal/pkg/claimcode/claimcode.go
package claimcode

import (
	"crypto/rand"
	"fmt"
)

// Alphabet deliberately omits 0/O, 1/I and vowels that form words, so codes
// survive being read over a counter or typed from a phone screen.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Length is the number of random characters in a code, excluding the dash.
const Length = 8

// New generates a claim code of the form "XXXX-XXXX". With a 32-character
// alphabet that is 40 bits of entropy; uniqueness is still enforced by the
// winners table's unique index, with the caller retrying on collision.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, 0, Length+1)
	for i, b := range buf {
		if i == Length/2 {
			code = append(code, '-')
		}
		code = append(code, Alphabet[int(b)%len(Alphabet)])
	}
	return string(code), nil
}
