package privacy

import (
	"context"
	"errors"
	"time"
)

// ErrKeyRevoked is returned when data is requested under a shredded key.
var ErrKeyRevoked = errors.New("encryption key revoked")

type EncryptionKeyRepository interface {
	// GetByPhoneHash returns nil, nil when no key exists.
	GetByPhoneHash(ctx context.Context, hash PhoneHash) (*EncryptionKey, error)
	Create(ctx context.Context, key *EncryptionKey) error
	Update(ctx context.Context, key *EncryptionKey) error
	// Revoke nulls the key material if the key is active and reports
	// whether a row changed.
	Revoke(ctx context.Context, hash PhoneHash, now time.Time) (bool, error)
}

type DeletionRequestRepository interface {
	Create(ctx context.Context, req *DeletionRequest) error
}

// KeyVault hands out per-patient data keys and destroys them on request.
type KeyVault interface {
	// DataKeyFor returns the active key for hash, creating or reissuing one
	// when needed.
	DataKeyFor(ctx context.Context, hash PhoneHash) ([]byte, error)
	// LookupDataKey returns the active key, ErrKeyRevoked after shredding, or
	// nil, nil when the patient never had a key.
	LookupDataKey(ctx context.Context, hash PhoneHash) ([]byte, error)
	// Revoke is idempotent: a missing or already revoked key is not an error.
	Revoke(ctx context.Context, hash PhoneHash) (bool, error)
}

// FieldCipher encrypts individual PII fields under a patient data key. aad
// binds a ciphertext to its row so it cannot be replayed elsewhere.
type FieldCipher interface {
	Seal(key, plaintext, aad []byte) ([]byte, error)
	Open(key, sealed, aad []byte) ([]byte, error)
}
