package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/packlane-io/packlane/internal/shared/constants"
)

// SubUnitModel represents the database persistence model for sellable
// sub-units. Slugs are unique within the owning pack.
type SubUnitModel struct {
	ID         uint   `gorm:"primarykey"`
	PackID     uint   `gorm:"not null;index:idx_pack_subunit;uniqueIndex:idx_pack_slug,priority:1"`
	Title      string `gorm:"not null;size:200"`
	Slug       string `gorm:"not null;size:200;uniqueIndex:idx_pack_slug,priority:2"`
	PriceCents uint   `gorm:"not null"`
	Published  bool   `gorm:"not null;default:false"`
	SortOrder  int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubUnitModel) TableName() string {
	return constants.TableSubUnits
}
