package usecases

import (
	"context"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/domain/consent"
	"github.com/hhgcare/hhg/internal/domain/privacy"
)

// callLog records the order in which collaborators were invoked.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) {
	if l != nil {
		l.calls = append(l.calls, name)
	}
}

type mockTxRunner struct {
	log *callLog
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.log.add("tx.begin")
	err := fn(ctx)
	if err != nil {
		m.log.add("tx.rollback")
		return err
	}
	m.log.add("tx.commit")
	return nil
}

type mockPhoneHasher struct{}

func (mockPhoneHasher) Hash(rawPhone string) (privacy.PhoneHash, error) {
	digits, err := privacy.NormalizePhone(rawPhone)
	if err != nil {
		return "", err
	}
	return privacy.PhoneHash("a1b2c3d4e5f6" + digits), nil
}

type mockKeyVault struct {
	log        *callLog
	RevokeFunc func(ctx context.Context, hash privacy.PhoneHash) (bool, error)
}

func (m *mockKeyVault) DataKeyFor(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
	return make([]byte, 32), nil
}

func (m *mockKeyVault) LookupDataKey(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
	return make([]byte, 32), nil
}

func (m *mockKeyVault) Revoke(ctx context.Context, hash privacy.PhoneHash) (bool, error) {
	m.log.add("vault.revoke")
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, hash)
	}
	return true, nil
}

type mockBookingRepository struct {
	log                       *callLog
	FindActiveByPhoneHashFunc func(ctx context.Context, phoneHash string) ([]*booking.Booking, error)
	SoftDeleteByPhoneHashFunc func(ctx context.Context, phoneHash string, now time.Time) (int64, error)
}

func (m *mockBookingRepository) ListNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

func (m *mockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	return nil
}

func (m *mockBookingRepository) GetByNumber(ctx context.Context, number string) (*booking.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindActiveByPhoneHash(ctx context.Context, phoneHash string) ([]*booking.Booking, error) {
	m.log.add("bookings.find")
	if m.FindActiveByPhoneHashFunc != nil {
		return m.FindActiveByPhoneHashFunc(ctx, phoneHash)
	}
	return nil, nil
}

func (m *mockBookingRepository) SoftDeleteByPhoneHash(ctx context.Context, phoneHash string, now time.Time) (int64, error) {
	m.log.add("bookings.soft_delete")
	if m.SoftDeleteByPhoneHashFunc != nil {
		return m.SoftDeleteByPhoneHashFunc(ctx, phoneHash, now)
	}
	return 0, nil
}

type mockConsentRepository struct {
	log                      *callLog
	AnonymizeByPhoneHashFunc func(ctx context.Context, phoneHash string) (int64, error)
}

func (m *mockConsentRepository) Create(ctx context.Context, token *consent.Token) error {
	return nil
}

func (m *mockConsentRepository) GetByToken(ctx context.Context, token string) (*consent.Token, error) {
	return nil, nil
}

func (m *mockConsentRepository) MarkExpired(ctx context.Context, token string, now time.Time) (bool, error) {
	return false, nil
}

func (m *mockConsentRepository) MarkAccepted(ctx context.Context, token string, acceptedAt time.Time, patientIP, deviceFingerprint string) (bool, error) {
	return false, nil
}

func (m *mockConsentRepository) AnonymizeByPhoneHash(ctx context.Context, phoneHash string) (int64, error) {
	m.log.add("consents.anonymize")
	if m.AnonymizeByPhoneHashFunc != nil {
		return m.AnonymizeByPhoneHashFunc(ctx, phoneHash)
	}
	return 0, nil
}

type mockDeletionRequestRepository struct {
	log        *callLog
	saved      []*privacy.DeletionRequest
	CreateFunc func(ctx context.Context, req *privacy.DeletionRequest) error
}

func (m *mockDeletionRequestRepository) Create(ctx context.Context, req *privacy.DeletionRequest) error {
	m.log.add("deletion_requests.create")
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	req.SetID(uint(len(m.saved) + 1))
	m.saved = append(m.saved, req)
	return nil
}

type mockAuditRepository struct {
	log     *callLog
	entries []*audit.Entry
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	m.log.add("audit.append")
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}
