package privacy

import (
	"fmt"
	"time"
)

type DeletionStatus string

const (
	DeletionStatusCompleted DeletionStatus = "completed"
	DeletionStatusFailed    DeletionStatus = "failed"
)

// DeletionRequest records an erasure. Only the audit prefix of the phone
// hash is kept so the record itself cannot re-identify the patient.
type DeletionRequest struct {
	id              uint
	phoneHashPrefix string
	status          DeletionStatus
	bookingsDeleted int
	requestedBy     string
	completedAt     *time.Time
	createdAt       time.Time
}

func NewCompletedDeletionRequest(hash PhoneHash, bookingsDeleted int, requestedBy string, now time.Time) (*DeletionRequest, error) {
	if hash.IsZero() {
		return nil, fmt.Errorf("phone hash is required")
	}
	if bookingsDeleted < 0 {
		return nil, fmt.Errorf("bookings deleted cannot be negative")
	}
	if requestedBy == "" {
		return nil, fmt.Errorf("requester is required")
	}
	return &DeletionRequest{
		phoneHashPrefix: hash.AuditPrefix(),
		status:          DeletionStatusCompleted,
		bookingsDeleted: bookingsDeleted,
		requestedBy:     requestedBy,
		completedAt:     &now,
		createdAt:       now,
	}, nil
}

func ReconstructDeletionRequest(
	id uint,
	phoneHashPrefix string,
	status DeletionStatus,
	bookingsDeleted int,
	requestedBy string,
	completedAt *time.Time,
	createdAt time.Time,
) *DeletionRequest {
	return &DeletionRequest{
		id:              id,
		phoneHashPrefix: phoneHashPrefix,
		status:          status,
		bookingsDeleted: bookingsDeleted,
		requestedBy:     requestedBy,
		completedAt:     completedAt,
		createdAt:       createdAt,
	}
}

func (d *DeletionRequest) ID() uint                { return d.id }
func (d *DeletionRequest) PhoneHashPrefix() string { return d.phoneHashPrefix }
func (d *DeletionRequest) Status() DeletionStatus  { return d.status }
func (d *DeletionRequest) BookingsDeleted() int    { return d.bookingsDeleted }
func (d *DeletionRequest) RequestedBy() string     { return d.requestedBy }
func (d *DeletionRequest) CompletedAt() *time.Time { return d.completedAt }
func (d *DeletionRequest) CreatedAt() time.Time    { return d.createdAt }

func (d *DeletionRequest) SetID(id uint) {
	d.id = id
}
