package privacy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"0901234567", "0901234567", false},
		{"+84 90-123-4567", "84901234567", false},
		{"(028) 3822.1234", "02838221234", false},
		{"١٢٣", "", true},
		{"call me", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhoneHash_AuditPrefix(t *testing.T) {
	h := PhoneHash("9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08")
	assert.Equal(t, "9f86d081", h.AuditPrefix())
	assert.Equal(t, "abc", PhoneHash("abc").AuditPrefix())
}

func TestEncryptionKey_RevokeIsIdempotent(t *testing.T) {
	key, err := NewEncryptionKey("hash", []byte("wrapped"), now)
	require.NoError(t, err)

	assert.True(t, key.Revoke(now.Add(time.Minute)))
	assert.True(t, key.IsRevoked())
	assert.Nil(t, key.WrappedKey())
	first := *key.RevokedAt()

	assert.False(t, key.Revoke(now.Add(time.Hour)))
	assert.Equal(t, first, *key.RevokedAt())
}

func TestEncryptionKey_Reissue(t *testing.T) {
	key, err := NewEncryptionKey("hash", []byte("v1"), now)
	require.NoError(t, err)

	assert.Error(t, key.Reissue([]byte("v2"), now), "active key cannot be reissued")

	key.Revoke(now)
	require.NoError(t, key.Reissue([]byte("v2"), now.Add(time.Hour)))
	assert.False(t, key.IsRevoked())
	assert.Equal(t, 2, key.KeyVersion())
	assert.Equal(t, []byte("v2"), key.WrappedKey())
}

func TestReconstructEncryptionKey(t *testing.T) {
	revoked := now
	_, err := ReconstructEncryptionKey(1, "hash", nil, 1, &revoked, now, now)
	assert.NoError(t, err, "revoked keys carry no material")

	_, err = ReconstructEncryptionKey(1, "hash", nil, 1, nil, now, now)
	assert.Error(t, err)
}

func TestNewCompletedDeletionRequest(t *testing.T) {
	req, err := NewCompletedDeletionRequest("9f86d081884c7d65", 3, "admin:7", now)
	require.NoError(t, err)

	assert.Equal(t, "9f86d081", req.PhoneHashPrefix())
	assert.Equal(t, DeletionStatusCompleted, req.Status())
	assert.Equal(t, 3, req.BookingsDeleted())
	require.NotNil(t, req.CompletedAt())

	_, err = NewCompletedDeletionRequest("", 1, "admin:7", now)
	assert.Error(t, err)
	_, err = NewCompletedDeletionRequest("hash", 1, "", now)
	assert.Error(t, err)
}
