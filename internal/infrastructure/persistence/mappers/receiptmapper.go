package mappers

import (
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
)

type ReceiptMapper interface {
	ToEntity(model *models.ReceiptModel) (*purchase.Receipt, error)
	ToModel(entity *purchase.Receipt) (*models.ReceiptModel, error)
	ToEntities(models []*models.ReceiptModel) ([]*purchase.Receipt, error)
}

type ReceiptMapperImpl struct{}

func NewReceiptMapper() ReceiptMapper {
	return &ReceiptMapperImpl{}
}

func (m *ReceiptMapperImpl) ToEntity(model *models.ReceiptModel) (*purchase.Receipt, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := purchase.ReconstructReceipt(
		model.ID,
		model.SID,
		model.RequestID,
		model.FileRef,
		model.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct receipt entity: %w", err)
	}

	return entity, nil
}

func (m *ReceiptMapperImpl) ToModel(entity *purchase.Receipt) (*models.ReceiptModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ReceiptModel{
		ID:         entity.ID(),
		SID:        entity.SID(),
		RequestID:  entity.RequestID(),
		FileRef:    entity.FileRef(),
		UploadedAt: entity.UploadedAt(),
	}, nil
}

func (m *ReceiptMapperImpl) ToEntities(receiptModels []*models.ReceiptModel) ([]*purchase.Receipt, error) {
	entities := make([]*purchase.Receipt, 0, len(receiptModels))
	for _, model := range receiptModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
