// Package catalog provides domain models for sellable content units.
// A Pack is a top-level course bundle; a SubUnit is an individually
// sellable lesson that belongs to exactly one pack.
package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Pack represents the pack aggregate root: a top-level content bundle
// sellable as a whole. Owning a pack entitles the owner to every sub-unit
// beneath it.
type Pack struct {
	id          uint
	title       string
	slug        string
	description string
	priceCents  uint
	published   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPack creates a new unpublished pack.
func NewPack(title, slug, description string, priceCents uint) (*Pack, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, ErrSlugRequired
	}

	now := time.Now()
	return &Pack{
		title:       title,
		slug:        slug,
		description: description,
		priceCents:  priceCents,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPack reconstructs a pack from persistence.
func ReconstructPack(
	id uint,
	title, slug, description string,
	priceCents uint,
	published bool,
	createdAt, updatedAt time.Time,
) (*Pack, error) {
	if id == 0 {
		return nil, fmt.Errorf("pack ID cannot be zero")
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}

	return &Pack{
		id:          id,
		title:       title,
		slug:        slug,
		description: description,
		priceCents:  priceCents,
		published:   published,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the pack ID
func (p *Pack) ID() uint {
	return p.id
}

// Title returns the pack title
func (p *Pack) Title() string {
	return p.title
}

// Slug returns the URL-safe pack slug
func (p *Pack) Slug() string {
	return p.slug
}

// Description returns the pack description
func (p *Pack) Description() string {
	return p.description
}

// PriceCents returns the pack price in cents
func (p *Pack) PriceCents() uint {
	return p.priceCents
}

// Published reports whether the pack is visible in the catalog
func (p *Pack) Published() bool {
	return p.published
}

// CreatedAt returns when the pack was created
func (p *Pack) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the pack was last updated
func (p *Pack) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the pack ID (only for persistence layer use)
func (p *Pack) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("pack ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("pack ID cannot be zero")
	}
	p.id = id
	return nil
}

// Publish makes the pack visible in the catalog.
func (p *Pack) Publish() {
	if p.published {
		return
	}
	p.published = true
	p.updatedAt = time.Now()
}

// Unpublish hides the pack from the catalog. Existing entitlements are
// unaffected.
func (p *Pack) Unpublish() {
	if !p.published {
		return
	}
	p.published = false
	p.updatedAt = time.Now()
}
