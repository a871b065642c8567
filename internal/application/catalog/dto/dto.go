// Package dto defines data transfer objects for the catalog application layer.
package dto

import (
	"time"

	"github.com/packlane-io/packlane/internal/domain/catalog"
)

// PackDTO represents a content pack in API responses
type PackDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PriceCents  uint      `json:"price_cents"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubUnitDTO represents a sellable sub-unit in API responses
type SubUnitDTO struct {
	ID         uint      `json:"id"`
	PackID     uint      `json:"pack_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	PriceCents uint      `json:"price_cents"`
	Published  bool      `json:"published"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// PackToDTO converts a pack to its API representation.
func PackToDTO(p *catalog.Pack) PackDTO {
	return PackDTO{
		ID:          p.ID(),
		Title:       p.Title(),
		Slug:        p.Slug(),
		Description: p.Description(),
		PriceCents:  p.PriceCents(),
		Published:   p.Published(),
		CreatedAt:   p.CreatedAt(),
	}
}

// PacksToDTOs converts a pack list.
func PacksToDTOs(packs []*catalog.Pack) []PackDTO {
	dtos := make([]PackDTO, len(packs))
	for i, p := range packs {
		dtos[i] = PackToDTO(p)
	}
	return dtos
}

// SubUnitToDTO converts a sub-unit to its API representation.
func SubUnitToDTO(s *catalog.SubUnit) SubUnitDTO {
	return SubUnitDTO{
		ID:         s.ID(),
		PackID:     s.PackID(),
		Title:      s.Title(),
		Slug:       s.Slug(),
		PriceCents: s.PriceCents(),
		Published:  s.Published(),
		SortOrder:  s.SortOrder(),
		CreatedAt:  s.CreatedAt(),
	}
}

// SubUnitsToDTOs converts a sub-unit list.
func SubUnitsToDTOs(subUnits []*catalog.SubUnit) []SubUnitDTO {
	dtos := make([]SubUnitDTO, len(subUnits))
	for i, s := range subUnits {
		dtos[i] = SubUnitToDTO(s)
	}
	return dtos
}
