package privacy

import (
	"fmt"
	"time"
)

// EncryptionKey is the wrapped data-encryption key for one patient. Revoking
// it destroys the wrapped bytes, which makes every ciphertext produced under
// it unrecoverable.
type EncryptionKey struct {
	id         uint
	phoneHash  PhoneHash
	wrappedKey []byte
	keyVersion int
	revokedAt  *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewEncryptionKey(phoneHash PhoneHash, wrappedKey []byte, now time.Time) (*EncryptionKey, error) {
	if phoneHash.IsZero() {
		return nil, fmt.Errorf("phone hash is required")
	}
	if len(wrappedKey) == 0 {
		return nil, fmt.Errorf("wrapped key is required")
	}
	return &EncryptionKey{
		phoneHash:  phoneHash,
		wrappedKey: wrappedKey,
		keyVersion: 1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructEncryptionKey(
	id uint,
	phoneHash PhoneHash,
	wrappedKey []byte,
	keyVersion int,
	revokedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*EncryptionKey, error) {
	if id == 0 {
		return nil, fmt.Errorf("encryption key ID cannot be zero")
	}
	if phoneHash.IsZero() {
		return nil, fmt.Errorf("phone hash is required")
	}
	if revokedAt == nil && len(wrappedKey) == 0 {
		return nil, fmt.Errorf("active encryption key %d has no key material", id)
	}
	return &EncryptionKey{
		id:         id,
		phoneHash:  phoneHash,
		wrappedKey: wrappedKey,
		keyVersion: keyVersion,
		revokedAt:  revokedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (k *EncryptionKey) ID() uint             { return k.id }
func (k *EncryptionKey) PhoneHash() PhoneHash { return k.phoneHash }
func (k *EncryptionKey) WrappedKey() []byte   { return k.wrappedKey }
func (k *EncryptionKey) KeyVersion() int      { return k.keyVersion }
func (k *EncryptionKey) RevokedAt() *time.Time {
	return k.revokedAt
}
func (k *EncryptionKey) CreatedAt() time.Time { return k.createdAt }
func (k *EncryptionKey) UpdatedAt() time.Time { return k.updatedAt }

func (k *EncryptionKey) SetID(id uint) {
	k.id = id
}

func (k *EncryptionKey) IsRevoked() bool {
	return k.revokedAt != nil
}

// Revoke discards the key material. It reports false when the key was
// already revoked.
func (k *EncryptionKey) Revoke(now time.Time) bool {
	if k.IsRevoked() {
		return false
	}
	k.wrappedKey = nil
	k.revokedAt = &now
	k.updatedAt = now
	return true
}

// Reissue installs fresh key material on a revoked key for a patient who
// books again after erasure. Data shredded under the old version stays
// unrecoverable.
func (k *EncryptionKey) Reissue(wrappedKey []byte, now time.Time) error {
	if !k.IsRevoked() {
		return fmt.Errorf("encryption key %d is still active", k.id)
	}
	if len(wrappedKey) == 0 {
		return fmt.Errorf("wrapped key is required")
	}
	k.wrappedKey = wrappedKey
	k.keyVersion++
	k.revokedAt = nil
	k.updatedAt = now
	return nil
}
