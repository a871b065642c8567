package catalog

import (
	"fmt"
	"strings"
	"time"
)

// SubUnit represents an individually sellable lesson inside a pack.
// It always belongs to exactly one pack.
type SubUnit struct {
	id         uint
	packID     uint
	title      string
	slug       string
	priceCents uint
	published  bool
	sortOrder  int
	createdAt  time.Time
	updatedAt  time.Time
}

// NewSubUnit creates a new unpublished sub-unit under the given pack.
func NewSubUnit(packID uint, title, slug string, priceCents uint, sortOrder int) (*SubUnit, error) {
	if packID == 0 {
		return nil, ErrPackIDRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, ErrSlugRequired
	}

	now := time.Now()
	return &SubUnit{
		packID:     packID,
		title:      title,
		slug:       slug,
		priceCents: priceCents,
		sortOrder:  sortOrder,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructSubUnit reconstructs a sub-unit from persistence.
func ReconstructSubUnit(
	id, packID uint,
	title, slug string,
	priceCents uint,
	published bool,
	sortOrder int,
	createdAt, updatedAt time.Time,
) (*SubUnit, error) {
	if id == 0 {
		return nil, fmt.Errorf("sub-unit ID cannot be zero")
	}
	if packID == 0 {
		return nil, ErrPackIDRequired
	}
	if title == "" {
		return nil, ErrTitleRequired
	}

	return &SubUnit{
		id:         id,
		packID:     packID,
		title:      title,
		slug:       slug,
		priceCents: priceCents,
		published:  published,
		sortOrder:  sortOrder,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// ID returns the sub-unit ID
func (s *SubUnit) ID() uint {
	return s.id
}

// PackID returns the owning pack ID
func (s *SubUnit) PackID() uint {
	return s.packID
}

// Title returns the sub-unit title
func (s *SubUnit) Title() string {
	return s.title
}

// Slug returns the URL-safe sub-unit slug
func (s *SubUnit) Slug() string {
	return s.slug
}

// PriceCents returns the sub-unit price in cents
func (s *SubUnit) PriceCents() uint {
	return s.priceCents
}

// Published reports whether the sub-unit is visible in the catalog
func (s *SubUnit) Published() bool {
	return s.published
}

// SortOrder returns the display position within the pack
func (s *SubUnit) SortOrder() int {
	return s.sortOrder
}

// CreatedAt returns when the sub-unit was created
func (s *SubUnit) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the sub-unit was last updated
func (s *SubUnit) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the sub-unit ID (only for persistence layer use)
func (s *SubUnit) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("sub-unit ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("sub-unit ID cannot be zero")
	}
	s.id = id
	return nil
}

// Publish makes the sub-unit visible in the catalog.
func (s *SubUnit) Publish() {
	if s.published {
		return
	}
	s.published = true
	s.updatedAt = time.Now()
}
