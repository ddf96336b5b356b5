// Package id generates cryptographically random identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base36Upper is used for human-readable fallback suffixes.
	Base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// TokenLength is the length of consent tokens handed to patients.
	TokenLength = 32
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	return GenerateFrom(alphabet, length)
}

// GenerateFrom creates a random string of the given length drawn uniformly
// from chars.
func GenerateFrom(chars string, length int) (string, error) {
	if chars == "" {
		return "", fmt.Errorf("alphabet must not be empty")
	}
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(chars)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = chars[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewConsentToken generates an opaque consent token.
func NewConsentToken() (string, error) {
	return Generate(TokenLength)
}
