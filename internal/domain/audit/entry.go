// Package audit defines the append-only record of security-relevant actions.
package audit

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionConsentIssued   Action = "consent.issued"
	ActionConsentAccepted Action = "consent.accepted"
	ActionConsentExpired  Action = "consent.expired"
	ActionBookingCreated  Action = "booking.created"
	ActionPatientDeleted  Action = "privacy.patient_data_deleted"
)

func (a Action) String() string { return string(a) }

type ActorType string

const (
	ActorPatient  ActorType = "patient"
	ActorPartner  ActorType = "partner"
	ActorStaff    ActorType = "staff"
	ActorAdmin    ActorType = "admin"
	ActorOperator ActorType = "operator"
	ActorSystem   ActorType = "system"
)

func (a ActorType) String() string { return string(a) }

func (a ActorType) IsValid() bool {
	switch a {
	case ActorPatient, ActorPartner, ActorStaff, ActorAdmin, ActorOperator, ActorSystem:
		return true
	}
	return false
}

// Entry is never updated or deleted once written.
type Entry struct {
	id         uint
	action     Action
	actorType  ActorType
	actorID    string
	targetType string
	targetID   string
	ipAddress  string
	metadata   map[string]any
	createdAt  time.Time
}

func NewEntry(action Action, actorType ActorType, actorID string, now time.Time) (*Entry, error) {
	if action == "" {
		return nil, fmt.Errorf("audit action is required")
	}
	if !actorType.IsValid() {
		return nil, fmt.Errorf("invalid actor type %q", actorType)
	}
	return &Entry{
		action:    action,
		actorType: actorType,
		actorID:   actorID,
		metadata:  make(map[string]any),
		createdAt: now,
	}, nil
}

func ReconstructEntry(
	id uint,
	action Action,
	actorType ActorType,
	actorID, targetType, targetID, ipAddress string,
	metadata map[string]any,
	createdAt time.Time,
) *Entry {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return &Entry{
		id:         id,
		action:     action,
		actorType:  actorType,
		actorID:    actorID,
		targetType: targetType,
		targetID:   targetID,
		ipAddress:  ipAddress,
		metadata:   metadata,
		createdAt:  createdAt,
	}
}

// WithTarget names the object acted on.
func (e *Entry) WithTarget(targetType, targetID string) *Entry {
	e.targetType = targetType
	e.targetID = targetID
	return e
}

func (e *Entry) WithIP(ip string) *Entry {
	e.ipAddress = ip
	return e
}

func (e *Entry) WithMetadata(key string, value any) *Entry {
	e.metadata[key] = value
	return e
}

func (e *Entry) ID() uint                 { return e.id }
func (e *Entry) Action() Action           { return e.action }
func (e *Entry) ActorType() ActorType     { return e.actorType }
func (e *Entry) ActorID() string          { return e.actorID }
func (e *Entry) TargetType() string       { return e.targetType }
func (e *Entry) TargetID() string         { return e.targetID }
func (e *Entry) IPAddress() string        { return e.ipAddress }
func (e *Entry) Metadata() map[string]any { return e.metadata }
func (e *Entry) CreatedAt() time.Time     { return e.createdAt }

func (e *Entry) SetID(id uint) {
	e.id = id
}
