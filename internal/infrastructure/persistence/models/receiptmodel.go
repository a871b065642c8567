package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/packlane-io/packlane/internal/shared/constants"
)

// ReceiptModel represents the database persistence model for
// proof-of-payment receipts. One record per request; a re-upload
// overwrites the stored reference.
type ReceiptModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: rc_xxx"`
	RequestID  uint   `gorm:"uniqueIndex;not null"`
	FileRef    string `gorm:"not null;size:500"`
	UploadedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ReceiptModel) TableName() string {
	return constants.TableReceipts
}
