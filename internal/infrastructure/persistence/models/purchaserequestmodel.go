package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/packlane-io/packlane/internal/shared/constants"
)

// PurchaseRequestModel represents the database persistence model for
// purchase requests. This is the anti-corruption layer between domain
// and database.
//
// Active is 1 while the request is pending and NULL otherwise. MySQL
// unique indexes ignore NULL values, so the composite index enforces at
// most one pending request per (user, unit) while leaving history rows
// unconstrained.
type PurchaseRequestModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: pr_xxx"`
	UserID      uint   `gorm:"not null;index:idx_user_request;uniqueIndex:idx_unique_pending_request,priority:1"`
	TargetType  string `gorm:"not null;size:20;uniqueIndex:idx_unique_pending_request,priority:2"`
	TargetID    uint   `gorm:"not null;uniqueIndex:idx_unique_pending_request,priority:3"`
	Status      string `gorm:"not null;size:20;index:idx_status"`
	Active      *uint8 `gorm:"uniqueIndex:idx_unique_pending_request,priority:4"`
	Metadata    datatypes.JSON
	RespondedAt *time.Time
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PurchaseRequestModel) TableName() string {
	return constants.TablePurchaseRequests
}

// BeforeCreate hook for GORM
func (m *PurchaseRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
