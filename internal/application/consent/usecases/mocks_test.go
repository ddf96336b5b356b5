package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	vo "github.com/hhgcare/hhg/internal/domain/consent/valueobjects"
	"github.com/hhgcare/hhg/internal/domain/privacy"
)

type mockConsentRepository struct {
	CreateFunc               func(ctx context.Context, token *consent.Token) error
	GetByTokenFunc           func(ctx context.Context, token string) (*consent.Token, error)
	MarkExpiredFunc          func(ctx context.Context, token string, now time.Time) (bool, error)
	MarkAcceptedFunc         func(ctx context.Context, token string, acceptedAt time.Time, patientIP, deviceFingerprint string) (bool, error)
	AnonymizeByPhoneHashFunc func(ctx context.Context, phoneHash string) (int64, error)
}

func (m *mockConsentRepository) Create(ctx context.Context, token *consent.Token) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *mockConsentRepository) GetByToken(ctx context.Context, token string) (*consent.Token, error) {
	if m.GetByTokenFunc != nil {
		return m.GetByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockConsentRepository) MarkExpired(ctx context.Context, token string, now time.Time) (bool, error) {
	if m.MarkExpiredFunc != nil {
		return m.MarkExpiredFunc(ctx, token, now)
	}
	return false, nil
}

func (m *mockConsentRepository) MarkAccepted(ctx context.Context, token string, acceptedAt time.Time, patientIP, deviceFingerprint string) (bool, error) {
	if m.MarkAcceptedFunc != nil {
		return m.MarkAcceptedFunc(ctx, token, acceptedAt, patientIP, deviceFingerprint)
	}
	return false, nil
}

func (m *mockConsentRepository) AnonymizeByPhoneHash(ctx context.Context, phoneHash string) (int64, error) {
	if m.AnonymizeByPhoneHashFunc != nil {
		return m.AnonymizeByPhoneHashFunc(ctx, phoneHash)
	}
	return 0, nil
}

type mockAuditRepository struct {
	entries    []*audit.Entry
	AppendFunc func(ctx context.Context, entry *audit.Entry) error
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

type mockPhoneHasher struct {
	HashFunc func(rawPhone string) (privacy.PhoneHash, error)
}

func (m *mockPhoneHasher) Hash(rawPhone string) (privacy.PhoneHash, error) {
	if m.HashFunc != nil {
		return m.HashFunc(rawPhone)
	}
	return privacy.PhoneHash("hash-of-" + rawPhone), nil
}

// tokenStore backs mockConsentRepository with a single row so lazy expiry
// can be observed across calls.
type tokenStore struct {
	tok             *consent.Token
	markExpiredHits int
}

func newTokenStore(tok *consent.Token) *tokenStore {
	return &tokenStore{tok: tok}
}

func (s *tokenStore) repo() *mockConsentRepository {
	return &mockConsentRepository{
		GetByTokenFunc: func(ctx context.Context, token string) (*consent.Token, error) {
			if s.tok == nil || s.tok.Token() != token {
				return nil, nil
			}
			return s.snapshot(), nil
		},
		MarkExpiredFunc: func(ctx context.Context, token string, now time.Time) (bool, error) {
			s.markExpiredHits++
			if s.tok.Status() != vo.StatusPending {
				return false, nil
			}
			return true, s.tok.Expire(now)
		},
		MarkAcceptedFunc: func(ctx context.Context, token string, acceptedAt time.Time, ip, fp string) (bool, error) {
			if s.tok.Status() != vo.StatusPending || acceptedAt.After(s.tok.ExpiresAt()) {
				return false, nil
			}
			return true, s.tok.Accept(ip, fp, acceptedAt)
		},
	}
}

// snapshot returns a copy, as a real store would.
func (s *tokenStore) snapshot() *consent.Token {
	t := s.tok
	cp, err := consent.ReconstructToken(t.ID(), t.Token(), t.Status(), t.ExpiresAt(), t.AcceptedAt(),
		t.PatientIP(), t.DeviceFingerprint(), t.PartnerName(), t.ServiceName(), t.DataDescription(),
		t.PhoneHash(), t.CreatedAt(), t.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return cp
}
