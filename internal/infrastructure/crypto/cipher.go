package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/hhgcare/hhg/internal/domain/privacy"
)

// ErrDecrypt hides whether a key or a ciphertext was wrong.
var ErrDecrypt = errors.New("failed to decrypt")

// Seal encrypts plaintext with XChaCha20-Poly1305 under key, binding it to
// aad. The random 24-byte nonce is prepended to the output.
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open reverses Seal.
func Open(key, sealed, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrDecrypt
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// NewDataKey returns a fresh random data-encryption key.
func NewDataKey() ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate data key: %w", err)
	}
	return key, nil
}

// FieldCipher adapts Seal and Open to privacy.FieldCipher.
type FieldCipher struct{}

var _ privacy.FieldCipher = FieldCipher{}

func (FieldCipher) Seal(key, plaintext, aad []byte) ([]byte, error) { return Seal(key, plaintext, aad) }

func (FieldCipher) Open(key, sealed, aad []byte) ([]byte, error) { return Open(key, sealed, aad) }
