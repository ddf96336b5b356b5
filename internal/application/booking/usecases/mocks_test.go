package usecases

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/booking"
	"github.com/hhgcare/hhg/internal/domain/privacy"
)

type mockBookingRepository struct {
	CreateFunc      func(ctx context.Context, b *booking.Booking) error
	GetByNumberFunc func(ctx context.Context, number string) (*booking.Booking, error)
}

func (m *mockBookingRepository) ListNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

func (m *mockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	b.SetID(1)
	return nil
}

func (m *mockBookingRepository) GetByNumber(ctx context.Context, number string) (*booking.Booking, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindActiveByPhoneHash(ctx context.Context, phoneHash string) ([]*booking.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) SoftDeleteByPhoneHash(ctx context.Context, phoneHash string, now time.Time) (int64, error) {
	return 0, nil
}

type mockNumberGenerator struct {
	calls        int
	GenerateFunc func(ctx context.Context, partnerName, phone string) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context, partnerName, phone string) (string, error) {
	m.calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, partnerName, phone)
	}
	return fmt.Sprintf("HHG-VIN-4567-A%d", m.calls), nil
}

type mockPhoneHasher struct{}

func (mockPhoneHasher) Hash(rawPhone string) (privacy.PhoneHash, error) {
	digits, err := privacy.NormalizePhone(rawPhone)
	if err != nil {
		return "", err
	}
	return privacy.PhoneHash("ffee" + digits), nil
}

type mockKeyVault struct {
	key               []byte
	DataKeyForFunc    func(ctx context.Context, hash privacy.PhoneHash) ([]byte, error)
	LookupDataKeyFunc func(ctx context.Context, hash privacy.PhoneHash) ([]byte, error)
}

func (m *mockKeyVault) DataKeyFor(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
	if m.DataKeyForFunc != nil {
		return m.DataKeyForFunc(ctx, hash)
	}
	return m.key, nil
}

func (m *mockKeyVault) LookupDataKey(ctx context.Context, hash privacy.PhoneHash) ([]byte, error) {
	if m.LookupDataKeyFunc != nil {
		return m.LookupDataKeyFunc(ctx, hash)
	}
	return m.key, nil
}

func (m *mockKeyVault) Revoke(ctx context.Context, hash privacy.PhoneHash) (bool, error) {
	return true, nil
}

// mockCipher "seals" by framing the plaintext with the key and aad, so Open
// fails exactly when either differs.
type mockCipher struct{}

func (mockCipher) Seal(key, plaintext, aad []byte) ([]byte, error) {
	out := append([]byte{}, key...)
	out = append(out, '#')
	out = append(out, aad...)
	out = append(out, '#')
	return append(out, plaintext...), nil
}

func (mockCipher) Open(key, sealed, aad []byte) ([]byte, error) {
	head := append(append(append([]byte{}, key...), '#'), aad...)
	head = append(head, '#')
	if !bytes.HasPrefix(sealed, head) {
		return nil, fmt.Errorf("failed to decrypt")
	}
	return sealed[len(head):], nil
}

type mockAuditRepository struct {
	entries []*audit.Entry
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}
