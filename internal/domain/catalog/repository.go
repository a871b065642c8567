package catalog

import "context"

// Repository defines the interface for catalog persistence operations
type Repository interface {
	// CreatePack creates a new pack
	CreatePack(ctx context.Context, p *Pack) error

	// UpdatePack updates an existing pack
	UpdatePack(ctx context.Context, p *Pack) error

	// GetPackByID retrieves a pack by ID
	GetPackByID(ctx context.Context, id uint) (*Pack, error)

	// ListPacks retrieves all packs, optionally restricted to published ones
	ListPacks(ctx context.Context, publishedOnly bool) ([]*Pack, error)

	// CreateSubUnit creates a new sub-unit
	CreateSubUnit(ctx context.Context, s *SubUnit) error

	// GetSubUnitByID retrieves a sub-unit by ID
	GetSubUnitByID(ctx context.Context, id uint) (*SubUnit, error)

	// ListSubUnitsByPack retrieves all sub-units belonging to a pack,
	// ordered by sort order
	ListSubUnitsByPack(ctx context.Context, packID uint) ([]*SubUnit, error)
}
