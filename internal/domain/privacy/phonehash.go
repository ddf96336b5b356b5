// Package privacy models patient identity keys and the encryption keys that
// make crypto-shredding possible.
package privacy

import (
	"fmt"
	"strings"
	"unicode"
)

// AuditHashPrefixLength is how much of a phone hash may appear in audit
// records. Eight hex characters correlate entries without re-identifying.
const AuditHashPrefixLength = 8

// PhoneHash is the keyed, non-reversible identifier used in place of a raw
// phone number everywhere in storage.
type PhoneHash string

func (h PhoneHash) String() string {
	return string(h)
}

func (h PhoneHash) IsZero() bool {
	return h == ""
}

// AuditPrefix returns the leading characters safe to write to the audit log.
func (h PhoneHash) AuditPrefix() string {
	if len(h) <= AuditHashPrefixLength {
		return string(h)
	}
	return string(h[:AuditHashPrefixLength])
}

// PhoneHasher derives phone hashes.
type PhoneHasher interface {
	Hash(rawPhone string) (PhoneHash, error)
}

// NormalizePhone reduces a phone number to its ASCII digits so that
// "+84 90-123-4567" and "84901234567" hash identically.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("phone number contains no digits")
	}
	return b.String(), nil
}
