package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	AuditDonorBlocked   = "DONOR_BLOCKED"
	AuditDonorUnblocked = "DONOR_UNBLOCKED"
	AuditStatusOverride = "REQUEST_STATUS_OVERRIDE"
	AuditRequestDeleted = "REQUEST_DELETED"

	EntityDonor        = "donor"
	EntityBloodRequest = "blood_request"
)

// AuditLog records a moderation or administrative action.
type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ActorID    *string         `json:"actorId" db:"actor_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entityType" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entityId" db:"entity_id"`
	OldValue   json.RawMessage `json:"oldValue,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"newValue,omitempty" db:"new_value"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

type CreateAuditLogInput struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
}
