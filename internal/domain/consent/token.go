package consent

import (
	"fmt"
	"time"

	vo "github.com/hhgcare/hhg/internal/domain/consent/valueobjects"
)

const (
	maxPartnerNameLength     = 200
	maxServiceNameLength     = 200
	maxDataDescriptionLength = 10000
)

// Token is a consent request handed to a patient as an unguessable link.
type Token struct {
	id                uint
	token             string
	status            vo.ConsentStatus
	expiresAt         time.Time
	acceptedAt        *time.Time
	patientIP         *string
	deviceFingerprint *string
	partnerName       string
	serviceName       string
	dataDescription   string
	phoneHash         *string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewToken(
	token string,
	partnerName string,
	serviceName string,
	dataDescription string,
	phoneHash *string,
	expiresAt time.Time,
	now time.Time,
) (*Token, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if partnerName == "" {
		return nil, fmt.Errorf("partner name is required")
	}
	if len(partnerName) > maxPartnerNameLength {
		return nil, fmt.Errorf("partner name exceeds maximum length of %d characters", maxPartnerNameLength)
	}
	if serviceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if len(serviceName) > maxServiceNameLength {
		return nil, fmt.Errorf("service name exceeds maximum length of %d characters", maxServiceNameLength)
	}
	if len(dataDescription) > maxDataDescriptionLength {
		return nil, fmt.Errorf("data description exceeds maximum length of %d characters", maxDataDescriptionLength)
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &Token{
		token:           token,
		status:          vo.StatusPending,
		expiresAt:       expiresAt,
		partnerName:     partnerName,
		serviceName:     serviceName,
		dataDescription: dataDescription,
		phoneHash:       phoneHash,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructToken(
	id uint,
	token string,
	status vo.ConsentStatus,
	expiresAt time.Time,
	acceptedAt *time.Time,
	patientIP *string,
	deviceFingerprint *string,
	partnerName string,
	serviceName string,
	dataDescription string,
	phoneHash *string,
	createdAt, updatedAt time.Time,
) (*Token, error) {
	if id == 0 {
		return nil, fmt.Errorf("consent token ID cannot be zero")
	}
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid consent status %q", status)
	}
	if status == vo.StatusAccepted && acceptedAt == nil {
		return nil, fmt.Errorf("accepted consent token %d has no acceptance time", id)
	}

	return &Token{
		id:                id,
		token:             token,
		status:            status,
		expiresAt:         expiresAt,
		acceptedAt:        acceptedAt,
		patientIP:         patientIP,
		deviceFingerprint: deviceFingerprint,
		partnerName:       partnerName,
		serviceName:       serviceName,
		dataDescription:   dataDescription,
		phoneHash:         phoneHash,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (t *Token) ID() uint                   { return t.id }
func (t *Token) Token() string              { return t.token }
func (t *Token) Status() vo.ConsentStatus   { return t.status }
func (t *Token) ExpiresAt() time.Time       { return t.expiresAt }
func (t *Token) AcceptedAt() *time.Time     { return t.acceptedAt }
func (t *Token) PatientIP() *string         { return t.patientIP }
func (t *Token) DeviceFingerprint() *string { return t.deviceFingerprint }
func (t *Token) PartnerName() string        { return t.partnerName }
func (t *Token) ServiceName() string        { return t.serviceName }
func (t *Token) DataDescription() string    { return t.dataDescription }
func (t *Token) PhoneHash() *string         { return t.phoneHash }
func (t *Token) CreatedAt() time.Time       { return t.createdAt }
func (t *Token) UpdatedAt() time.Time       { return t.updatedAt }

// SetID is called by the repository after insert.
func (t *Token) SetID(id uint) {
	t.id = id
}

// EffectiveStatus is the status a reader must observe at now: a pending token
// past its expiry is expired whether or not that has been written back yet.
func EffectiveStatus(t *Token, now time.Time) vo.ConsentStatus {
	if t.status == vo.StatusPending && now.After(t.expiresAt) {
		return vo.StatusExpired
	}
	return t.status
}

// Expire moves a pending token to expired.
func (t *Token) Expire(now time.Time) error {
	if !t.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("cannot expire consent token in status %s", t.status)
	}
	t.status = vo.StatusExpired
	t.updatedAt = now
	return nil
}

// Accept records the patient's acknowledgment. The token must still be
// pending at now.
func (t *Token) Accept(patientIP, deviceFingerprint string, now time.Time) error {
	if EffectiveStatus(t, now) != vo.StatusPending {
		return fmt.Errorf("cannot accept consent token in status %s", EffectiveStatus(t, now))
	}
	if !t.status.CanTransitionTo(vo.StatusAccepted) {
		return fmt.Errorf("cannot accept consent token in status %s", t.status)
	}

	acceptedAt := now
	t.status = vo.StatusAccepted
	t.acceptedAt = &acceptedAt
	if patientIP != "" {
		t.patientIP = &patientIP
	}
	if deviceFingerprint != "" {
		t.deviceFingerprint = &deviceFingerprint
	}
	t.updatedAt = now
	return nil
}
