package purchase

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestNotFound is returned when a purchase request is not found
	ErrRequestNotFound = errors.New("purchase request not found")

	// ErrReceiptNotFound is returned when no receipt is attached to a request
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrDuplicateActiveRequest is returned when a pending or accepted
	// request already exists for the same user and content unit
	ErrDuplicateActiveRequest = errors.New("an active request already exists for this content unit")

	// ErrRequestNotPending is returned when an operation requires a pending
	// request but the request has already been reviewed
	ErrRequestNotPending = errors.New("purchase request is not pending")

	// ErrRequestTerminal is returned when attempting to transition an
	// accepted request
	ErrRequestTerminal = errors.New("accepted request cannot change status")

	// ErrUserIDRequired is returned when the user ID is missing
	ErrUserIDRequired = errors.New("user ID is required")

	// ErrFileRefRequired is returned when a receipt file reference is missing
	ErrFileRefRequired = errors.New("file reference is required")
)

// ErrInvalidStatusTransition returns an error for invalid status transitions
func ErrInvalidStatusTransition(from, to RequestStatus) error {
	return fmt.Errorf("invalid status transition from %s to %s", from, to)
}
