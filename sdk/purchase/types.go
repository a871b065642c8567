package purchase

import "time"

// TargetKind selects the granularity of a content unit.
type TargetKind string

const (
	TargetKindPack    TargetKind = "pack"
	TargetKindSubUnit TargetKind = "subunit"
)

// Target identifies a content unit by kind and ID.
type Target struct {
	Kind TargetKind
	ID   uint
}

// Request status values as returned by the server.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Request is a purchase request as returned by the server.
type Request struct {
	ID          uint       `json:"id"`
	SID         string     `json:"sid"`
	UserID      uint       `json:"user_id"`
	TargetKind  TargetKind `json:"target_kind"`
	TargetID    uint       `json:"target_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	ReceiptRef  string     `json:"receipt_ref,omitempty"`
}

// AccessDecision is the result of an entitlement check.
type AccessDecision struct {
	HasAccess bool   `json:"has_access"`
	Status    string `json:"status"`
	RequestID uint   `json:"request_id,omitempty"`
	Inherited bool   `json:"inherited,omitempty"`
}

// Receipt is a proof-of-payment reference attached to a request.
type Receipt struct {
	ID         uint      `json:"id"`
	SID        string    `json:"sid"`
	RequestID  uint      `json:"request_id"`
	ReceiptRef string    `json:"receipt_ref"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
