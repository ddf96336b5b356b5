package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/shared/errors"
)

// HMACPhoneHasher hashes the digit-only phone with HMAC-SHA256. Without the
// key the hash cannot be brute-forced from the small phone-number space.
type HMACPhoneHasher struct {
	key []byte
}

var _ privacy.PhoneHasher = (*HMACPhoneHasher)(nil)

func NewHMACPhoneHasher(key []byte) *HMACPhoneHasher {
	return &HMACPhoneHasher{key: key}
}

func (h *HMACPhoneHasher) Hash(rawPhone string) (privacy.PhoneHash, error) {
	digits, err := privacy.NormalizePhone(rawPhone)
	if err != nil {
		return "", errors.NewValidationError("invalid phone number", err.Error())
	}
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(digits))
	return privacy.PhoneHash(hex.EncodeToString(mac.Sum(nil))), nil
}
