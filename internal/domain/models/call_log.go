package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы записи о звонке
const (
	CallStatusPending  = "pending"
	CallStatusActive   = "active"
	CallStatusRejected = "rejected"
	CallStatusEnded    = "ended"
)

type CallLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CallerID   uuid.UUID `json:"caller_id" db:"caller_id"`
	ReceiverID uuid.UUID `json:"receiver_id" db:"receiver_id"`
	CallType   string    `json:"call_type" db:"call_type"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
