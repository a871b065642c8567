package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/packlane-io/packlane/internal/shared/constants"
)

// PackModel represents the database persistence model for content packs.
type PackModel struct {
	ID          uint   `gorm:"primarykey"`
	Title       string `gorm:"not null;size:200"`
	Slug        string `gorm:"uniqueIndex;not null;size:200"`
	Description string `gorm:"size:2000"`
	PriceCents  uint   `gorm:"not null"`
	Published   bool   `gorm:"not null;default:false;index:idx_published"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PackModel) TableName() string {
	return constants.TablePacks
}
