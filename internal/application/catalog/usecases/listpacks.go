package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/application/catalog/dto"
	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type ListPacksQuery struct {
	// PublishedOnly hides unpublished packs from non-admin callers
	PublishedOnly bool
}

type ListPacksResult struct {
	Packs []dto.PackDTO
}

// ListPacksUseCase returns the catalog's packs.
type ListPacksUseCase struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewListPacksUseCase(catalogRepo catalog.Repository, logger logger.Interface) *ListPacksUseCase {
	return &ListPacksUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *ListPacksUseCase) Execute(ctx context.Context, query ListPacksQuery) (*ListPacksResult, error) {
	packs, err := uc.catalogRepo.ListPacks(ctx, query.PublishedOnly)
	if err != nil {
		uc.logger.Errorw("failed to list packs", "error", err)
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	return &ListPacksResult{Packs: dto.PacksToDTOs(packs)}, nil
}

type ListSubUnitsQuery struct {
	PackID uint
}

type ListSubUnitsResult struct {
	SubUnits []dto.SubUnitDTO
}

// ListSubUnitsUseCase returns a pack's sub-units ordered by sort order.
type ListSubUnitsUseCase struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewListSubUnitsUseCase(catalogRepo catalog.Repository, logger logger.Interface) *ListSubUnitsUseCase {
	return &ListSubUnitsUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *ListSubUnitsUseCase) Execute(ctx context.Context, query ListSubUnitsQuery) (*ListSubUnitsResult, error) {
	if _, err := uc.catalogRepo.GetPackByID(ctx, query.PackID); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("pack not found")
		}
		uc.logger.Errorw("failed to get pack", "pack_id", query.PackID, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	subUnits, err := uc.catalogRepo.ListSubUnitsByPack(ctx, query.PackID)
	if err != nil {
		uc.logger.Errorw("failed to list sub-units", "pack_id", query.PackID, "error", err)
		return nil, fmt.Errorf("failed to list sub-units: %w", err)
	}
	return &ListSubUnitsResult{SubUnits: dto.SubUnitsToDTOs(subUnits)}, nil
}
