// Package purchase provides domain models and business logic for the
// purchase-request workflow: users request access to a content unit, attach
// proof of payment, and an administrator accepts or rejects the request.
package purchase

import "fmt"

// UnitKind represents the granularity of a sellable content unit
type UnitKind string

const (
	// UnitKindPack represents a top-level pack, sellable as a whole
	UnitKindPack UnitKind = "pack"
	// UnitKindSubUnit represents an individually sellable sub-unit of a pack
	UnitKindSubUnit UnitKind = "subunit"
)

// IsValid checks if the unit kind is valid
func (k UnitKind) IsValid() bool {
	switch k {
	case UnitKindPack, UnitKindSubUnit:
		return true
	default:
		return false
	}
}

// String returns the string representation of the unit kind
func (k UnitKind) String() string {
	return string(k)
}

// UnitRef identifies a content unit by kind and ID. Identity is the
// (kind, id) pair; the same numeric ID may exist for both kinds.
type UnitRef struct {
	Kind UnitKind
	ID   uint
}

// NewUnitRef creates a validated unit reference.
func NewUnitRef(kind UnitKind, id uint) (UnitRef, error) {
	if !kind.IsValid() {
		return UnitRef{}, fmt.Errorf("invalid unit kind: %s", kind)
	}
	if id == 0 {
		return UnitRef{}, fmt.Errorf("unit ID is required")
	}
	return UnitRef{Kind: kind, ID: id}, nil
}

// Equal reports whether two unit references identify the same content unit.
func (u UnitRef) Equal(other UnitRef) bool {
	return u.Kind == other.Kind && u.ID == other.ID
}

// String returns a compact "kind:id" representation.
func (u UnitRef) String() string {
	return fmt.Sprintf("%s:%d", u.Kind, u.ID)
}

// RequestStatus represents the lifecycle status of a purchase request
type RequestStatus string

const (
	// RequestStatusPending indicates the request awaits admin review
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusAccepted indicates the request was approved; terminal
	RequestStatusAccepted RequestStatus = "accepted"
	// RequestStatusRejected indicates the request was declined; the user may
	// submit a new request for the same unit
	RequestStatusRejected RequestStatus = "rejected"
)

// IsValid checks if the request status is valid
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the request status
func (s RequestStatus) String() string {
	return string(s)
}

// IsPending checks if the status indicates an in-flight request
func (s RequestStatus) IsPending() bool {
	return s == RequestStatusPending
}

// IsTerminal checks if the status admits no further transitions.
// Accepted is always terminal; rejected is terminal for this request but the
// unit may be requested again with a new request.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

// IsActive reports whether the status blocks a new submission for the same
// unit: a pending request is in flight, an accepted one already grants
// access.
func (s RequestStatus) IsActive() bool {
	return s == RequestStatusPending || s == RequestStatusAccepted
}
