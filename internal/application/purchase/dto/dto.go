// Package dto defines data transfer objects for the purchase application layer.
package dto

import "time"

// RequestDTO represents a purchase request in API responses
type RequestDTO struct {
	ID          uint       `json:"id"`
	SID         string     `json:"sid"`
	UserID      uint       `json:"user_id"`
	TargetKind  string     `json:"target_kind"`
	TargetID    uint       `json:"target_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	ReceiptRef  string     `json:"receipt_ref,omitempty"`
}

// ReceiptDTO represents an attached proof-of-payment in API responses
type ReceiptDTO struct {
	ID         uint      `json:"id"`
	SID        string    `json:"sid"`
	RequestID  uint      `json:"request_id"`
	ReceiptRef string    `json:"receipt_ref"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AccessDecisionDTO represents a resolved access decision in API responses
type AccessDecisionDTO struct {
	HasAccess bool   `json:"has_access"`
	Status    string `json:"status"`
	RequestID uint   `json:"request_id,omitempty"`
	Inherited bool   `json:"inherited,omitempty"`
}
