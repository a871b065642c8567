// Package entitlement decides whether a user may open a content unit. It is
// a pure function of the user's purchase requests and the unit hierarchy:
// pack-level acceptance grants every sub-unit beneath the pack. The package
// never fails and has no side effects; callers supply the request set.
package entitlement

// AccessStatus represents the resolved entitlement state for a user and a
// content unit. Unlike purchase.RequestStatus it includes "none" for units
// the user never requested.
type AccessStatus string

const (
	// AccessStatusNone indicates no request exists for the unit
	AccessStatusNone AccessStatus = "none"
	// AccessStatusPending indicates a request awaits admin review
	AccessStatusPending AccessStatus = "pending"
	// AccessStatusAccepted indicates access is granted
	AccessStatusAccepted AccessStatus = "accepted"
	// AccessStatusRejected indicates the latest request was declined
	AccessStatusRejected AccessStatus = "rejected"
)

// IsValid checks if the access status is valid
func (s AccessStatus) IsValid() bool {
	switch s {
	case AccessStatusNone, AccessStatusPending, AccessStatusAccepted, AccessStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the access status
func (s AccessStatus) String() string {
	return string(s)
}

// AccessDecision is the derived access state for one (user, unit) pair. It
// is computed on demand and never stored.
type AccessDecision struct {
	// Granted reports whether the user may open the unit now
	Granted bool
	// Status is the resolved entitlement state
	Status AccessStatus
	// RequestID is the internal ID of the request the decision rests on,
	// zero when Status is none
	RequestID uint
	// Inherited reports whether the grant came from a pack-level acceptance
	// rather than a request for the unit itself
	Inherited bool
}
