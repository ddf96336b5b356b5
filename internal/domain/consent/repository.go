package consent

import (
	"context"
	"time"
)

// Repository stores consent tokens. Status changes are conditional writes so
// that concurrent readers and acceptors cannot move a terminal token.
type Repository interface {
	Create(ctx context.Context, token *Token) error
	// GetByToken returns nil, nil when the token does not exist.
	GetByToken(ctx context.Context, token string) (*Token, error)
	// MarkExpired moves the token to expired only if it is still pending.
	// It reports whether this call performed the transition.
	MarkExpired(ctx context.Context, token string, now time.Time) (bool, error)
	// MarkAccepted records acceptance only if the token is pending and not
	// past its expiry at acceptedAt.
	MarkAccepted(ctx context.Context, token string, acceptedAt time.Time, patientIP, deviceFingerprint string) (bool, error)
	// AnonymizeByPhoneHash replaces the phone hash of every matching token
	// with the anonymized sentinel and returns the number of rows changed.
	AnonymizeByPhoneHash(ctx context.Context, phoneHash string) (int64, error)
}
