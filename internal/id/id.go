// Package id mints the short identifiers used for customers, loans and
// payments. Tokens are random; collisions are not checked.
package id

import (
	"math/rand"
	"time"
)

const (
	tokenLen = 8
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// New returns a random 8-character token like "K4QZ71BX", drawn from A-Z and
// 0-9.
func New() string {
	buf := make([]byte, tokenLen)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}

// Valid reports whether s has the shape of a minted token.
func Valid(s string) bool {
	if len(s) != tokenLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
