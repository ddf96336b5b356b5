// Package crypto implements phone hashing, field encryption and the
// per-patient key vault used for crypto-shredding.
package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	hkdfSalt        = "hhg/privacy/v1"
	infoPhoneHash   = "phone-hash"
	infoKeyWrapping = "key-encryption-key"

	minMasterSecretLength = 16
)

// MasterKeys are the independent keys derived from privacy.master_secret.
type MasterKeys struct {
	PhoneHashKey []byte
	KEK          []byte
}

// DeriveMasterKeys expands the configured master secret with HKDF-SHA256 so
// that hashing and key wrapping never share key material.
func DeriveMasterKeys(masterSecret string) (*MasterKeys, error) {
	if len(masterSecret) < minMasterSecretLength {
		return nil, fmt.Errorf("master secret must be at least %d bytes", minMasterSecretLength)
	}

	hashKey, err := expand(masterSecret, infoPhoneHash, sha256.Size)
	if err != nil {
		return nil, err
	}
	kek, err := expand(masterSecret, infoKeyWrapping, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return &MasterKeys{PhoneHashKey: hashKey, KEK: kek}, nil
}

func expand(secret, info string, size int) ([]byte, error) {
	r := hkdf.New(sha256.New, []byte(secret), []byte(hkdfSalt), []byte(info))
	key := make([]byte, size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", info, err)
	}
	return key, nil
}
