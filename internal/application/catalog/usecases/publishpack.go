package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/application/catalog/dto"
	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type PublishPackCommand struct {
	PackID    uint
	Published bool
}

type PublishPackResult struct {
	Pack dto.PackDTO
}

// PublishPackUseCase toggles a pack's visibility in the public catalog.
type PublishPackUseCase struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewPublishPackUseCase(catalogRepo catalog.Repository, logger logger.Interface) *PublishPackUseCase {
	return &PublishPackUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *PublishPackUseCase) Execute(ctx context.Context, cmd PublishPackCommand) (*PublishPackResult, error) {
	pack, err := uc.catalogRepo.GetPackByID(ctx, cmd.PackID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("pack not found")
		}
		uc.logger.Errorw("failed to get pack", "pack_id", cmd.PackID, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	if cmd.Published {
		pack.Publish()
	} else {
		pack.Unpublish()
	}

	if err := uc.catalogRepo.UpdatePack(ctx, pack); err != nil {
		uc.logger.Errorw("failed to update pack", "pack_id", cmd.PackID, "error", err)
		return nil, fmt.Errorf("failed to update pack: %w", err)
	}

	uc.logger.Infow("pack visibility updated", "pack_id", pack.ID(), "published", cmd.Published)

	return &PublishPackResult{Pack: dto.PackToDTO(pack)}, nil
}
