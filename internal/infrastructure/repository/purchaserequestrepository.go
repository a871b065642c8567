package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/mappers"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type PurchaseRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PurchaseRequestMapper
	logger logger.Interface
}

func NewPurchaseRequestRepository(
	db *gorm.DB,
	logger logger.Interface,
) purchase.RequestRepository {
	return &PurchaseRequestRepositoryImpl{
		db:     db,
		mapper: mappers.NewPurchaseRequestMapper(),
		logger: logger,
	}
}

func (r *PurchaseRequestRepositoryImpl) Create(ctx context.Context, requestEntity *purchase.PurchaseRequest) error {
	model, err := r.mapper.ToModel(requestEntity)
	if err != nil {
		r.logger.Errorw("failed to map purchase request entity to model", "error", err)
		return fmt.Errorf("failed to map purchase request entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// The unique index on (user_id, target_type, target_id, active)
		// rejects a second pending row for the same unit.
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("a pending request already exists for this content unit")
		}
		r.logger.Errorw("failed to create purchase request in database", "error", err)
		return fmt.Errorf("failed to create purchase request: %w", err)
	}

	if err := requestEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set purchase request ID", "error", err)
		return fmt.Errorf("failed to set purchase request ID: %w", err)
	}

	r.logger.Infow("purchase request created successfully",
		"id", model.ID,
		"user_id", model.UserID,
		"target_type", model.TargetType,
		"target_id", model.TargetID)
	return nil
}

func (r *PurchaseRequestRepositoryImpl) Update(ctx context.Context, requestEntity *purchase.PurchaseRequest) error {
	model, err := r.mapper.ToModel(requestEntity)
	if err != nil {
		r.logger.Errorw("failed to map purchase request entity to model", "error", err)
		return fmt.Errorf("failed to map purchase request entity: %w", err)
	}

	// Save writes every column, clearing active when the request leaves
	// pending so the row drops out of the duplicate-pending index.
	// The aggregate bumps version exactly once per state change, so the
	// stored row must still carry the version the aggregate was loaded
	// with; a stale copy matches zero rows instead of clobbering a row
	// another reviewer already settled.
	result := r.db.WithContext(ctx).Model(&models.PurchaseRequestModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("status", "active", "metadata", "responded_at", "version", "updated_at").
		Updates(map[string]interface{}{
			"status":       model.Status,
			"active":       model.Active,
			"metadata":     model.Metadata,
			"responded_at": model.RespondedAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update purchase request", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update purchase request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.PurchaseRequestModel{}).
			Where("id = ?", model.ID).Count(&count).Error; err != nil {
			r.logger.Errorw("failed to check purchase request existence", "id", model.ID, "error", err)
			return fmt.Errorf("failed to update purchase request: %w", err)
		}
		if count == 0 {
			return errors.NewNotFoundError("purchase request not found")
		}
		r.logger.Warnw("stale purchase request update rejected",
			"id", model.ID,
			"expected_version", model.Version-1)
		return errors.NewConflictError("purchase request was modified by another operation")
	}

	return nil
}

func (r *PurchaseRequestRepositoryImpl) GetByID(ctx context.Context, id uint) (*purchase.PurchaseRequest, error) {
	var model models.PurchaseRequestModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("purchase request not found")
		}
		r.logger.Errorw("failed to get purchase request by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PurchaseRequestRepositoryImpl) GetBySID(ctx context.Context, sid string) (*purchase.PurchaseRequest, error) {
	var model models.PurchaseRequestModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("purchase request not found")
		}
		r.logger.Errorw("failed to get purchase request by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PurchaseRequestRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*purchase.PurchaseRequest, error) {
	var requestModels []*models.PurchaseRequestModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		r.logger.Errorw("failed to list purchase requests by user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}

	return r.mapper.ToEntities(requestModels)
}

func (r *PurchaseRequestRepositoryImpl) ListByUserAndKind(ctx context.Context, userID uint, kind purchase.UnitKind) ([]*purchase.PurchaseRequest, error) {
	var requestModels []*models.PurchaseRequestModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ?", userID, kind.String()).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		r.logger.Errorw("failed to list purchase requests by user and kind",
			"user_id", userID,
			"kind", kind.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}

	return r.mapper.ToEntities(requestModels)
}

func (r *PurchaseRequestRepositoryImpl) ListPending(ctx context.Context) ([]*purchase.PurchaseRequest, error) {
	var requestModels []*models.PurchaseRequestModel

	if err := r.db.WithContext(ctx).
		Where("status = ?", purchase.RequestStatusPending.String()).
		Order("created_at ASC").
		Find(&requestModels).Error; err != nil {
		r.logger.Errorw("failed to list pending purchase requests", "error", err)
		return nil, fmt.Errorf("failed to list pending purchase requests: %w", err)
	}

	return r.mapper.ToEntities(requestModels)
}

func (r *PurchaseRequestRepositoryImpl) toEntity(model *models.PurchaseRequestModel) (*purchase.PurchaseRequest, error) {
	entity, err := r.mapper.ToEntity(model)
	if err != nil {
		r.logger.Errorw("failed to map purchase request model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map purchase request: %w", err)
	}
	return entity, nil
}
