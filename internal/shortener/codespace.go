package shortener

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// CodeLength is the fixed length of every short code.
	CodeLength = 7

	// Alphabet is the 62-symbol set codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ShortCode is a CodeLength string drawn from Alphabet.
type ShortCode string

// CodeSource produces candidate short codes. Implementations must be safe for
// concurrent use.
type CodeSource interface {
	Generate() ShortCode
}

// CodeSpace draws codes uniformly from Alphabet. The zero value is ready to use.
type CodeSpace struct{}

// Generate returns a fresh random code. It does not touch any store.
func (CodeSpace) Generate() ShortCode {
	return ShortCode(gonanoid.MustGenerate(Alphabet, CodeLength))
}

// IsValidCode reports whether s has the shape of a short code.
func IsValidCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
