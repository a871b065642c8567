package purchase

import (
	"fmt"
	"time"

	"github.com/packlane-io/packlane/internal/shared/id"
)

// PurchaseRequest represents one purchase attempt for one content unit by
// one user. Requests start pending and are accepted or rejected by an
// administrator. Accepted is terminal; a rejected request is never mutated
// again but may be superseded by a new request for the same unit.
type PurchaseRequest struct {
	id          uint
	sid         string // Stripe-style public identifier (pr_xxx)
	userID      uint
	target      UnitRef
	status      RequestStatus
	metadata    map[string]any // Client context captured at submission
	respondedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	version     int // Version for optimistic locking
}

// NewPurchaseRequest creates a new pending request for the given user and
// content unit.
func NewPurchaseRequest(userID uint, target UnitRef, metadata map[string]any) (*PurchaseRequest, error) {
	if userID == 0 {
		return nil, ErrUserIDRequired
	}
	if !target.Kind.IsValid() {
		return nil, fmt.Errorf("invalid unit kind: %s", target.Kind)
	}
	if target.ID == 0 {
		return nil, fmt.Errorf("unit ID is required")
	}

	sid, err := id.NewPurchaseRequestSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request SID: %w", err)
	}

	if metadata == nil {
		metadata = make(map[string]any)
	}

	now := time.Now()
	return &PurchaseRequest{
		sid:       sid,
		userID:    userID,
		target:    target,
		status:    RequestStatusPending,
		metadata:  metadata,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructPurchaseRequest reconstructs a request from persistence.
func ReconstructPurchaseRequest(
	requestID uint,
	sid string,
	userID uint,
	target UnitRef,
	status RequestStatus,
	metadata map[string]any,
	respondedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) (*PurchaseRequest, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID cannot be zero")
	}
	if userID == 0 {
		return nil, ErrUserIDRequired
	}
	if !target.Kind.IsValid() {
		return nil, fmt.Errorf("invalid unit kind: %s", target.Kind)
	}
	if target.ID == 0 {
		return nil, fmt.Errorf("unit ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid request status: %s", status)
	}

	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &PurchaseRequest{
		id:          requestID,
		sid:         sid,
		userID:      userID,
		target:      target,
		status:      status,
		metadata:    metadata,
		respondedAt: respondedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}, nil
}

// ID returns the request ID
func (r *PurchaseRequest) ID() uint {
	return r.id
}

// SID returns the public Stripe-style identifier
func (r *PurchaseRequest) SID() string {
	return r.sid
}

// UserID returns the requesting user's ID
func (r *PurchaseRequest) UserID() uint {
	return r.userID
}

// Target returns the content unit this request is for
func (r *PurchaseRequest) Target() UnitRef {
	return r.target
}

// Status returns the request status
func (r *PurchaseRequest) Status() RequestStatus {
	return r.status
}

// Metadata returns the request metadata
func (r *PurchaseRequest) Metadata() map[string]any {
	return r.metadata
}

// RespondedAt returns when the request was reviewed, or nil while pending
func (r *PurchaseRequest) RespondedAt() *time.Time {
	return r.respondedAt
}

// CreatedAt returns when the request was created
func (r *PurchaseRequest) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the request was last updated
func (r *PurchaseRequest) UpdatedAt() time.Time {
	return r.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (r *PurchaseRequest) Version() int {
	return r.version
}

// SetID sets the request ID (only for persistence layer use)
func (r *PurchaseRequest) SetID(requestID uint) error {
	if r.id != 0 {
		return fmt.Errorf("request ID is already set")
	}
	if requestID == 0 {
		return fmt.Errorf("request ID cannot be zero")
	}
	r.id = requestID
	return nil
}

// IsPending checks if the request awaits review
func (r *PurchaseRequest) IsPending() bool {
	return r.status == RequestStatusPending
}

// IsAccepted checks if the request has been approved
func (r *PurchaseRequest) IsAccepted() bool {
	return r.status == RequestStatusAccepted
}

// Accept approves the request. Only pending requests can be accepted;
// acceptance is terminal.
func (r *PurchaseRequest) Accept() error {
	if r.status == RequestStatusAccepted {
		return ErrRequestTerminal
	}
	if r.status != RequestStatusPending {
		return ErrInvalidStatusTransition(r.status, RequestStatusAccepted)
	}

	now := time.Now()
	r.status = RequestStatusAccepted
	r.respondedAt = &now
	r.updatedAt = now
	r.version++

	return nil
}

// Reject declines the request. Only pending requests can be rejected. The
// rejected request is preserved as history; a new request for the same unit
// supersedes it.
func (r *PurchaseRequest) Reject() error {
	if r.status == RequestStatusAccepted {
		return ErrRequestTerminal
	}
	if r.status != RequestStatusPending {
		return ErrInvalidStatusTransition(r.status, RequestStatusRejected)
	}

	now := time.Now()
	r.status = RequestStatusRejected
	r.respondedAt = &now
	r.updatedAt = now
	r.version++

	return nil
}
