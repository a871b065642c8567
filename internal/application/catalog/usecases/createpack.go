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

type CreatePackCommand struct {
	Title       string
	Slug        string
	Description string
	PriceCents  uint
	Publish     bool
}

type CreatePackResult struct {
	Pack dto.PackDTO
}

// CreatePackUseCase registers a new content pack in the catalog.
type CreatePackUseCase struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewCreatePackUseCase(catalogRepo catalog.Repository, logger logger.Interface) *CreatePackUseCase {
	return &CreatePackUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *CreatePackUseCase) Execute(ctx context.Context, cmd CreatePackCommand) (*CreatePackResult, error) {
	pack, err := catalog.NewPack(cmd.Title, cmd.Slug, cmd.Description, cmd.PriceCents)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Publish {
		pack.Publish()
	}

	if err := uc.catalogRepo.CreatePack(ctx, pack); err != nil {
		if stderrors.Is(err, catalog.ErrDuplicateSlug) || errors.IsConflictError(err) {
			return nil, errors.NewConflictError("a pack with this slug already exists")
		}
		uc.logger.Errorw("failed to create pack", "slug", pack.Slug(), "error", err)
		return nil, fmt.Errorf("failed to create pack: %w", err)
	}

	uc.logger.Infow("pack created", "pack_id", pack.ID(), "slug", pack.Slug())

	return &CreatePackResult{Pack: dto.PackToDTO(pack)}, nil
}
