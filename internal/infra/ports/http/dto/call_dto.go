package dto

import "github.com/google/uuid"

type InitiateCallRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	CallType   string    `json:"call_type"`
}

type InitiateCallResponse struct {
	CallID uuid.UUID `json:"call_id"`
}
