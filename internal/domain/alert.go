package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertBloodRequest  AlertType = "blood_request"
	AlertDonorAccepted AlertType = "donor_accepted"
	AlertSystem        AlertType = "system"
)

// Alert is a stored notification row. A nil UserID means broadcast.
type Alert struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Type      AlertType `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	RelatedID *string   `json:"relatedId" db:"related_id"`
	UserID    *string   `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type AlertFilter struct {
	UserID string
	Type   string
	IsRead *bool
}
