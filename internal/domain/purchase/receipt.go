package purchase

import (
	"fmt"
	"strings"
	"time"

	"github.com/packlane-io/packlane/internal/shared/id"
)

// Receipt binds an uploaded proof-of-payment reference to exactly one
// purchase request. At most one receipt exists per request; a second upload
// replaces the first. The upload transport itself is external; this entity
// only records the resulting reference.
type Receipt struct {
	id         uint
	sid        string // Stripe-style public identifier (rc_xxx)
	requestID  uint
	fileRef    string
	uploadedAt time.Time
}

// NewReceipt creates a receipt record for the given request. The owning
// request must be pending; that guard lives in the application layer where
// the request state is known.
func NewReceipt(requestID uint, fileRef string) (*Receipt, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	fileRef = strings.TrimSpace(fileRef)
	if fileRef == "" {
		return nil, ErrFileRefRequired
	}

	sid, err := id.NewReceiptSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt SID: %w", err)
	}

	return &Receipt{
		sid:        sid,
		requestID:  requestID,
		fileRef:    fileRef,
		uploadedAt: time.Now(),
	}, nil
}

// ReconstructReceipt reconstructs a receipt from persistence.
func ReconstructReceipt(receiptID uint, sid string, requestID uint, fileRef string, uploadedAt time.Time) (*Receipt, error) {
	if receiptID == 0 {
		return nil, fmt.Errorf("receipt ID cannot be zero")
	}
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if fileRef == "" {
		return nil, ErrFileRefRequired
	}

	return &Receipt{
		id:         receiptID,
		sid:        sid,
		requestID:  requestID,
		fileRef:    fileRef,
		uploadedAt: uploadedAt,
	}, nil
}

// ID returns the receipt ID
func (rc *Receipt) ID() uint {
	return rc.id
}

// SID returns the public Stripe-style identifier
func (rc *Receipt) SID() string {
	return rc.sid
}

// RequestID returns the owning request ID
func (rc *Receipt) RequestID() uint {
	return rc.requestID
}

// FileRef returns the opaque reference to the uploaded proof file
func (rc *Receipt) FileRef() string {
	return rc.fileRef
}

// UploadedAt returns when the proof file upload completed
func (rc *Receipt) UploadedAt() time.Time {
	return rc.uploadedAt
}

// SetID sets the receipt ID (only for persistence layer use)
func (rc *Receipt) SetID(receiptID uint) error {
	if rc.id != 0 {
		return fmt.Errorf("receipt ID is already set")
	}
	if receiptID == 0 {
		return fmt.Errorf("receipt ID cannot be zero")
	}
	rc.id = receiptID
	return nil
}

// Replace swaps the stored file reference for a newer upload. Last write
// wins; the receipt keeps its identity.
func (rc *Receipt) Replace(fileRef string) error {
	fileRef = strings.TrimSpace(fileRef)
	if fileRef == "" {
		return ErrFileRefRequired
	}
	rc.fileRef = fileRef
	rc.uploadedAt = time.Now()
	return nil
}
