// Package alphanum generates random strings over a fixed alphanumeric alphabet.
package alphanum

import (
	"math/rand/v2"
)

// Alphabet holds the 62 symbols a random string is drawn from: digits,
// then upper-case letters, then lower-case letters.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// String returns n characters, each drawn independently and uniformly from
// Alphabet. Each character carries log2(62) ≈ 5.95 bits of entropy.
// It is not suitable for cryptographic uses.
//
// String panics if n is negative.
func String(n int) string {
	if n < 0 {
		panic("alphanum: negative length")
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[rand.N(len(Alphabet))]
	}

	return string(b)
}

// Contains reports whether every byte of s belongs to Alphabet.
func Contains(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z') {
			return false
		}
	}
	return true
}
