package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hhgcare/hhg/internal/infrastructure/config"
	"github.com/hhgcare/hhg/internal/infrastructure/migration"
	"github.com/hhgcare/hhg/internal/shared/authorization"
	sharedConfig "github.com/hhgcare/hhg/internal/shared/config"
	"github.com/hhgcare/hhg/internal/shared/constants"
	"github.com/hhgcare/hhg/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite"},
		Auth: sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{
			Secret:           "router-test-secret-0123456789",
			Issuer:           "hhg",
			AccessExpMinutes: 30,
		}},
		RateLimit: sharedConfig.RateLimitConfig{
			Store:                "database",
			ConsentLimit:         3,
			ConsentWindowSeconds: 60,
			APILimit:             100,
			APIWindowSeconds:     60,
		},
		Consent: sharedConfig.ConsentConfig{TokenTTLHours: 24},
		Privacy: sharedConfig.PrivacyConfig{MasterSecret: "router-test-master-secret"},
		Booking: sharedConfig.BookingConfig{NumberPrefix: "HHG", MaxProbes: 1000, MaxCreateAttempts: 3},
	}
}

type testServer struct {
	engine    *gin.Engine
	container *Container
}

func newTestServer(t *testing.T) *testServer {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))

	container, err := NewContainer(db, nil, testConfig(), logger.NewNopLogger())
	require.NoError(t, err)

	router, err := NewRouter(container)
	require.NoError(t, err)
	router.SetupRoutes()

	return &testServer{engine: router.GetEngine(), container: container}
}

func (s *testServer) bearer(t *testing.T, subject string, role authorization.UserRole, partner string) string {
	token, err := s.container.services.jwtService.Generate(subject, role, partner)
	require.NoError(t, err)
	return "Bearer " + token.AccessToken
}

func (s *testServer) do(method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewReader(raw)
	} else {
		buf = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.RemoteAddr = "198.51.100.7:4000"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set(constants.HeaderAuthorization, auth)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type string `json:"type"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if target != nil {
		require.NoError(t, json.Unmarshal(env.Data, target))
	}
}

func TestRouter_ConsentFlow(t *testing.T) {
	s := newTestServer(t)
	partner := s.bearer(t, "partner-7", authorization.RolePartner, "Nha khoa Vinh")

	w := s.do(http.MethodPost, "/consent-requests", partner, map[string]string{
		"service_name":     "Implant",
		"data_description": "**Ho ten** va so dien thoai",
		"patient_phone":    "0901234567",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var issued struct {
		Token  string `json:"token"`
		Status string `json:"status"`
	}
	decode(t, w, &issued)
	assert.Equal(t, "pending", issued.Status)
	require.Len(t, issued.Token, 32)

	w = s.do(http.MethodGet, "/consent/"+issued.Token, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "3", w.Header().Get(constants.HeaderRateLimitLimit))
	assert.Equal(t, "2", w.Header().Get(constants.HeaderRateLimitRemaining))
	var info struct {
		PartnerName         string `json:"partner_name"`
		DataDescriptionHTML string `json:"data_description_html"`
	}
	decode(t, w, &info)
	assert.Equal(t, "Nha khoa Vinh", info.PartnerName)
	assert.Contains(t, info.DataDescriptionHTML, "<strong>Ho ten</strong>")

	w = s.do(http.MethodPost, "/consent/"+issued.Token+"/accept", "", map[string]string{"device_fingerprint": "fp-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// third consent call in the window still passes, the fourth is limited
	w = s.do(http.MethodGet, "/consent/"+issued.Token+"/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Status            string  `json:"status"`
		DeviceFingerprint *string `json:"device_fingerprint"`
	}
	decode(t, w, &status)
	assert.Equal(t, "accepted", status.Status)
	require.NotNil(t, status.DeviceFingerprint)
	assert.Equal(t, "fp-1", *status.DeviceFingerprint)

	w = s.do(http.MethodGet, "/consent/"+issued.Token+"/status", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderRetryAfter))
}

func TestRouter_BookingAndErasure(t *testing.T) {
	s := newTestServer(t)
	staff := s.bearer(t, "staff-1", authorization.RoleStaff, "")
	admin := s.bearer(t, "admin-1", authorization.RoleAdmin, "")
	partner := s.bearer(t, "partner-7", authorization.RolePartner, "Nha khoa Vinh")

	appointment := time.Date(2025, 5, 10, 2, 30, 0, 0, time.UTC)
	w := s.do(http.MethodPost, "/bookings", staff, map[string]interface{}{
		"partner_name":   "Nha khoa Vinh",
		"service_name":   "Implant",
		"patient_name":   "Nguyen Van A",
		"patient_phone":  "0901234567",
		"appointment_at": appointment,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		BookingNumber string `json:"booking_number"`
	}
	decode(t, w, &created)
	assert.Equal(t, "HHG-NHA-4567-A1", created.BookingNumber)

	w = s.do(http.MethodGet, "/bookings/"+created.BookingNumber, partner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var seen struct {
		PIIAvailable bool   `json:"pii_available"`
		PatientName  string `json:"patient_name"`
		PatientPhone string `json:"patient_phone"`
	}
	decode(t, w, &seen)
	assert.True(t, seen.PIIAvailable)
	assert.Equal(t, "Nguyen Van A", seen.PatientName)
	assert.Equal(t, "*******567", seen.PatientPhone)

	other := s.bearer(t, "partner-9", authorization.RolePartner, "Phong kham khac")
	w = s.do(http.MethodGet, "/bookings/"+created.BookingNumber, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/admin/privacy/deletions", staff, map[string]string{"phone": "0901234567"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/admin/privacy/deletions", admin, map[string]string{"phone": "+84 90 123 4567"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// "+84 90 123 4567" normalizes to different digits than "0901234567"
	var result struct {
		Found bool `json:"found"`
	}
	decode(t, w, &result)
	assert.False(t, result.Found)

	w = s.do(http.MethodPost, "/admin/privacy/deletions", admin, map[string]string{"phone": "090-123-4567"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var deleted struct {
		Found        bool `json:"found"`
		DeletedCount int  `json:"deleted_count"`
	}
	decode(t, w, &deleted)
	assert.True(t, deleted.Found)
	assert.Equal(t, 1, deleted.DeletedCount)

	w = s.do(http.MethodGet, "/bookings/"+created.BookingNumber, staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shredded struct {
		IsDeleted    bool   `json:"is_deleted"`
		PIIAvailable bool   `json:"pii_available"`
		PatientName  string `json:"patient_name"`
	}
	decode(t, w, &shredded)
	assert.True(t, shredded.IsDeleted)
	assert.False(t, shredded.PIIAvailable)
	assert.Empty(t, shredded.PatientName)

	w = s.do(http.MethodGet, "/admin/audit-logs?action=privacy.patient_data_deleted", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var logs struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &logs)
	assert.Equal(t, int64(1), logs.Total)
}

func TestRouter_RequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/bookings", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/admin/audit-logs", "Bearer not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
