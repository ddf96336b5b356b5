package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/application/privacy/usecases"
	"github.com/hhgcare/hhg/internal/domain/audit"
	"github.com/hhgcare/hhg/internal/domain/consent"
	"github.com/hhgcare/hhg/internal/domain/privacy"
	"github.com/hhgcare/hhg/internal/infrastructure/crypto"
	"github.com/hhgcare/hhg/internal/shared/db"
	"github.com/hhgcare/hhg/internal/shared/errors"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

type failingAnonymizeRepository struct {
	consent.Repository
	fail bool
}

func (r *failingAnonymizeRepository) AnonymizeByPhoneHash(ctx context.Context, phoneHash string) (int64, error) {
	if r.fail {
		return 0, fmt.Errorf("lock wait timeout")
	}
	return r.Repository.AnonymizeByPhoneHash(ctx, phoneHash)
}

type failingRevokeRepository struct {
	privacy.EncryptionKeyRepository
}

func (r *failingRevokeRepository) Revoke(ctx context.Context, hash privacy.PhoneHash, now time.Time) (bool, error) {
	return false, fmt.Errorf("deadlock found")
}

type erasureFixture struct {
	gdb      *gorm.DB
	hash     privacy.PhoneHash
	keys     *EncryptionKeyRepository
	bookings *BookingRepository
	consents *failingAnonymizeRepository
	auditLog audit.Repository
}

func newErasureFixture(t *testing.T) *erasureFixture {
	gdb := setupTestDB(t)
	masterKeys, err := crypto.DeriveMasterKeys("erasure-test-secret")
	require.NoError(t, err)

	hash, err := crypto.NewHMACPhoneHasher(masterKeys.PhoneHashKey).Hash("0901234567")
	require.NoError(t, err)

	f := &erasureFixture{
		gdb:      gdb,
		hash:     hash,
		keys:     NewEncryptionKeyRepository(gdb),
		bookings: NewBookingRepository(gdb),
		consents: &failingAnonymizeRepository{Repository: NewConsentTokenRepository(gdb, logger.NewNopLogger())},
		auditLog: NewAuditLogRepository(gdb, logger.NewNopLogger()),
	}

	vault := crypto.NewKeyVault(f.keys, masterKeys.KEK, logger.NewNopLogger())
	_, err = vault.DataKeyFor(context.Background(), hash)
	require.NoError(t, err)
	require.NoError(t, f.bookings.Create(context.Background(), createTestBooking(t, "HHG-PHO-4567-A1", hash.String())))

	return f
}

func (f *erasureFixture) useCase(t *testing.T, keyRepo privacy.EncryptionKeyRepository) *usecases.DeletePatientDataUseCase {
	masterKeys, err := crypto.DeriveMasterKeys("erasure-test-secret")
	require.NoError(t, err)
	return usecases.NewDeletePatientDataUseCase(
		db.NewTransactionManager(f.gdb),
		crypto.NewHMACPhoneHasher(masterKeys.PhoneHashKey),
		crypto.NewKeyVault(keyRepo, masterKeys.KEK, logger.NewNopLogger()),
		f.bookings,
		f.consents,
		NewDeletionRequestRepository(f.gdb),
		f.auditLog,
		logger.NewNopLogger(),
	)
}

func (f *erasureFixture) command() usecases.DeletePatientDataCommand {
	return usecases.DeletePatientDataCommand{
		RawPhone:    "090-123-4567",
		RequestedBy: "admin:1",
		ActorType:   audit.ActorAdmin,
	}
}

func (f *erasureFixture) keyRevoked(t *testing.T) bool {
	key, err := f.keys.GetByPhoneHash(context.Background(), f.hash)
	require.NoError(t, err)
	require.NotNil(t, key)
	return key.IsRevoked()
}

func (f *erasureFixture) activeBookings(t *testing.T) int {
	active, err := f.bookings.FindActiveByPhoneHash(context.Background(), f.hash.String())
	require.NoError(t, err)
	return len(active)
}

func (f *erasureFixture) auditTotal(t *testing.T) int64 {
	_, total, err := f.auditLog.List(context.Background(), audit.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	return total
}

func TestDeletePatientData_MarkingFailureLeavesKeyRevoked(t *testing.T) {
	f := newErasureFixture(t)
	f.consents.fail = true
	uc := f.useCase(t, f.keys)

	_, err := uc.Execute(context.Background(), f.command())
	require.Error(t, err)
	assert.True(t, errors.IsPartialFailureError(err))

	assert.True(t, f.keyRevoked(t))
	assert.Equal(t, 1, f.activeBookings(t))
	assert.Zero(t, f.auditTotal(t))

	f.consents.fail = false
	result, err := uc.Execute(context.Background(), f.command())
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 1, result.DeletedCount)
	assert.True(t, f.keyRevoked(t))
	assert.Zero(t, f.activeBookings(t))
	assert.EqualValues(t, 1, f.auditTotal(t))
}

func TestDeletePatientData_RevokeFailureChangesNothing(t *testing.T) {
	f := newErasureFixture(t)
	uc := f.useCase(t, &failingRevokeRepository{EncryptionKeyRepository: f.keys})

	_, err := uc.Execute(context.Background(), f.command())
	require.Error(t, err)
	assert.True(t, errors.IsServiceUnavailableError(err))
	assert.False(t, errors.IsPartialFailureError(err))

	assert.False(t, f.keyRevoked(t))
	assert.Equal(t, 1, f.activeBookings(t))
	assert.Zero(t, f.auditTotal(t))
}

func TestDeletePatientData_CompletesWithRealStores(t *testing.T) {
	f := newErasureFixture(t)

	result, err := f.useCase(t, f.keys).Execute(context.Background(), f.command())
	require.NoError(t, err)
	assert.Equal(t, &usecases.DeletePatientDataResult{Found: true, DeletedCount: 1}, result)

	assert.True(t, f.keyRevoked(t))
	assert.Zero(t, f.activeBookings(t))
	assert.EqualValues(t, 1, f.auditTotal(t))
}
