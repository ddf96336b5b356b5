package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

// KeyVault stores one wrapped data key per phone hash. The wrapping binds the
// key to its phone hash, so a wrapped key copied to another row will not open.
type KeyVault struct {
	repo   privacy.EncryptionKeyRepository
	kek    []byte
	logger logger.Interface
	now    func() time.Time
}

var _ privacy.KeyVault = (*KeyVault)(nil)

func NewKeyVault(repo privacy.EncryptionKeyRepository, kek []byte, logger logger.Interface) *KeyVault {
	return &KeyVault{
		repo:   repo,
		kek:    kek,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (v *KeyVault) DataKeyFor(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
	key, err := v.repo.GetByPhoneHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load encryption key: %w", err)
	}

	if key != nil && !key.IsRevoked() {
		return v.unwrap(key)
	}

	dek, err := NewDataKey()
	if err != nil {
		return nil, err
	}
	wrapped, err := Seal(v.kek, dek, []byte(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap data key: %w", err)
	}

	now := v.now()

	if key == nil {
		newKey, err := privacy.NewEncryptionKey(hash, wrapped, now)
		if err != nil {
			return nil, err
		}
		if err := v.repo.Create(ctx, newKey); err != nil {
			if errors.IsDuplicateError(err) {
				// A concurrent booking created the key first; use theirs.
				return v.LookupDataKey(ctx, hash)
			}
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
		return dek, nil
	}

	if err := key.Reissue(wrapped, now); err != nil {
		return nil, err
	}
	if err := v.repo.Update(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to reissue encryption key: %w", err)
	}
	v.logger.Infow("encryption key reissued after revocation",
		"phone_hash_prefix", hash.AuditPrefix(),
		"key_version", key.KeyVersion(),
	)
	return dek, nil
}

func (v *KeyVault) LookupDataKey(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
	key, err := v.repo.GetByPhoneHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load encryption key: %w", err)
	}
	if key == nil {
		return nil, nil
	}
	if key.IsRevoked() {
		return nil, privacy.ErrKeyRevoked
	}
	return v.unwrap(key)
}

func (v *KeyVault) Revoke(ctx context.Context, hash privacy.PhoneHash) (bool, error) {
	revoked, err := v.repo.Revoke(ctx, hash, v.now())
	if err != nil {
		return false, fmt.Errorf("failed to revoke encryption key: %w", err)
	}
	return revoked, nil
}

func (v *KeyVault) unwrap(key *privacy.EncryptionKey) ([]byte, error) {
	dek, err := Open(v.kek, key.WrappedKey(), []byte(key.PhoneHash()))
	if err != nil {
		v.logger.Errorw("failed to unwrap data key",
			"phone_hash_prefix", key.PhoneHash().AuditPrefix(),
			"key_version", key.KeyVersion(),
		)
		return nil, fmt.Errorf("failed to unwrap data key: %w", err)
	}
	return dek, nil
}
