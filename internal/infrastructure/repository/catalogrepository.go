package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/mappers"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type CatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CatalogMapper
	logger logger.Interface
}

func NewCatalogRepository(
	db *gorm.DB,
	logger logger.Interface,
) catalog.Repository {
	return &CatalogRepositoryImpl{
		db:     db,
		mapper: mappers.NewCatalogMapper(),
		logger: logger,
	}
}

func (r *CatalogRepositoryImpl) CreatePack(ctx context.Context, packEntity *catalog.Pack) error {
	model, err := r.mapper.PackToModel(packEntity)
	if err != nil {
		r.logger.Errorw("failed to map pack entity to model", "error", err)
		return fmt.Errorf("failed to map pack entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return catalog.ErrDuplicateSlug
		}
		r.logger.Errorw("failed to create pack in database", "slug", model.Slug, "error", err)
		return fmt.Errorf("failed to create pack: %w", err)
	}

	if err := packEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set pack ID", "error", err)
		return fmt.Errorf("failed to set pack ID: %w", err)
	}

	r.logger.Infow("pack created successfully", "id", model.ID, "slug", model.Slug)
	return nil
}

func (r *CatalogRepositoryImpl) UpdatePack(ctx context.Context, packEntity *catalog.Pack) error {
	model, err := r.mapper.PackToModel(packEntity)
	if err != nil {
		r.logger.Errorw("failed to map pack entity to model", "error", err)
		return fmt.Errorf("failed to map pack entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.PackModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"slug":        model.Slug,
			"description": model.Description,
			"price_cents": model.PriceCents,
			"published":   model.Published,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update pack", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update pack: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("pack not found")
	}

	return nil
}

func (r *CatalogRepositoryImpl) GetPackByID(ctx context.Context, id uint) (*catalog.Pack, error) {
	var model models.PackModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("pack not found")
		}
		r.logger.Errorw("failed to get pack by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	entity, err := r.mapper.PackToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map pack model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map pack: %w", err)
	}

	return entity, nil
}

func (r *CatalogRepositoryImpl) ListPacks(ctx context.Context, publishedOnly bool) ([]*catalog.Pack, error) {
	var packModels []*models.PackModel

	query := r.db.WithContext(ctx).Order("id ASC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Find(&packModels).Error; err != nil {
		r.logger.Errorw("failed to list packs", "error", err)
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}

	return r.mapper.PacksToEntities(packModels)
}

func (r *CatalogRepositoryImpl) CreateSubUnit(ctx context.Context, subUnitEntity *catalog.SubUnit) error {
	model, err := r.mapper.SubUnitToModel(subUnitEntity)
	if err != nil {
		r.logger.Errorw("failed to map sub-unit entity to model", "error", err)
		return fmt.Errorf("failed to map sub-unit entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return catalog.ErrDuplicateSlug
		}
		r.logger.Errorw("failed to create sub-unit in database",
			"pack_id", model.PackID,
			"slug", model.Slug,
			"error", err)
		return fmt.Errorf("failed to create sub-unit: %w", err)
	}

	if err := subUnitEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set sub-unit ID", "error", err)
		return fmt.Errorf("failed to set sub-unit ID: %w", err)
	}

	r.logger.Infow("sub-unit created successfully",
		"id", model.ID,
		"pack_id", model.PackID,
		"slug", model.Slug)
	return nil
}

func (r *CatalogRepositoryImpl) GetSubUnitByID(ctx context.Context, id uint) (*catalog.SubUnit, error) {
	var model models.SubUnitModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("sub-unit not found")
		}
		r.logger.Errorw("failed to get sub-unit by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get sub-unit: %w", err)
	}

	entity, err := r.mapper.SubUnitToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map sub-unit model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map sub-unit: %w", err)
	}

	return entity, nil
}

func (r *CatalogRepositoryImpl) ListSubUnitsByPack(ctx context.Context, packID uint) ([]*catalog.SubUnit, error) {
	var subUnitModels []*models.SubUnitModel

	if err := r.db.WithContext(ctx).
		Where("pack_id = ?", packID).
		Order("sort_order ASC, id ASC").
		Find(&subUnitModels).Error; err != nil {
		r.logger.Errorw("failed to list sub-units by pack", "pack_id", packID, "error", err)
		return nil, fmt.Errorf("failed to list sub-units: %w", err)
	}

	return r.mapper.SubUnitsToEntities(subUnitModels)
}
