package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/mappers"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type ReceiptRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ReceiptMapper
	logger logger.Interface
}

func NewReceiptRepository(
	db *gorm.DB,
	logger logger.Interface,
) purchase.ReceiptRepository {
	return &ReceiptRepositoryImpl{
		db:     db,
		mapper: mappers.NewReceiptMapper(),
		logger: logger,
	}
}

func (r *ReceiptRepositoryImpl) Save(ctx context.Context, receiptEntity *purchase.Receipt) error {
	model, err := r.mapper.ToModel(receiptEntity)
	if err != nil {
		r.logger.Errorw("failed to map receipt entity to model", "error", err)
		return fmt.Errorf("failed to map receipt entity: %w", err)
	}

	// Upsert on request_id keeps one receipt row per request; a re-upload
	// overwrites the stored reference.
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_ref", "uploaded_at", "updated_at"}),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to save receipt", "request_id", model.RequestID, "error", err)
		return fmt.Errorf("failed to save receipt: %w", err)
	}

	if receiptEntity.ID() == 0 {
		if err := receiptEntity.SetID(model.ID); err != nil {
			r.logger.Errorw("failed to set receipt ID", "error", err)
			return fmt.Errorf("failed to set receipt ID: %w", err)
		}
	}

	return nil
}

func (r *ReceiptRepositoryImpl) GetByRequestID(ctx context.Context, requestID uint) (*purchase.Receipt, error) {
	var model models.ReceiptModel

	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("receipt not found")
		}
		r.logger.Errorw("failed to get receipt by request ID", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map receipt model to entity", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("failed to map receipt: %w", err)
	}

	return entity, nil
}

func (r *ReceiptRepositoryImpl) ListByRequestIDs(ctx context.Context, requestIDs []uint) ([]*purchase.Receipt, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	var receiptModels []*models.ReceiptModel
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Find(&receiptModels).Error; err != nil {
		r.logger.Errorw("failed to list receipts by request IDs", "error", err)
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return r.mapper.ToEntities(receiptModels)
}
