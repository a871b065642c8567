package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/packlane-io/packlane/internal/application/catalog/dto"
	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type CreateSubUnitCommand struct {
	PackID     uint
	Title      string
	Slug       string
	PriceCents uint
	SortOrder  int
}

type CreateSubUnitResult struct {
	SubUnit dto.SubUnitDTO
}

// CreateSubUnitUseCase registers a sellable sub-unit under an existing pack.
type CreateSubUnitUseCase struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewCreateSubUnitUseCase(catalogRepo catalog.Repository, logger logger.Interface) *CreateSubUnitUseCase {
	return &CreateSubUnitUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *CreateSubUnitUseCase) Execute(ctx context.Context, cmd CreateSubUnitCommand) (*CreateSubUnitResult, error) {
	if _, err := uc.catalogRepo.GetPackByID(ctx, cmd.PackID); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("pack not found")
		}
		uc.logger.Errorw("failed to get pack", "pack_id", cmd.PackID, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	subUnit, err := catalog.NewSubUnit(cmd.PackID, cmd.Title, cmd.Slug, cmd.PriceCents, cmd.SortOrder)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.catalogRepo.CreateSubUnit(ctx, subUnit); err != nil {
		if stderrors.Is(err, catalog.ErrDuplicateSlug) || errors.IsConflictError(err) {
			return nil, errors.NewConflictError("a sub-unit with this slug already exists in the pack")
		}
		uc.logger.Errorw("failed to create sub-unit",
			"pack_id", cmd.PackID,
			"slug", subUnit.Slug(),
			"error", err)
		return nil, fmt.Errorf("failed to create sub-unit: %w", err)
	}

	uc.logger.Infow("sub-unit created",
		"sub_unit_id", subUnit.ID(),
		"pack_id", cmd.PackID,
		"slug", subUnit.Slug())

	return &CreateSubUnitResult{SubUnit: dto.SubUnitToDTO(subUnit)}, nil
}
