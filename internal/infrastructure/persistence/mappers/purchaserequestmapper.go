package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
)

type PurchaseRequestMapper interface {
	ToEntity(model *models.PurchaseRequestModel) (*purchase.PurchaseRequest, error)
	ToModel(entity *purchase.PurchaseRequest) (*models.PurchaseRequestModel, error)
	ToEntities(models []*models.PurchaseRequestModel) ([]*purchase.PurchaseRequest, error)
}

type PurchaseRequestMapperImpl struct{}

func NewPurchaseRequestMapper() PurchaseRequestMapper {
	return &PurchaseRequestMapperImpl{}
}

func (m *PurchaseRequestMapperImpl) ToEntity(model *models.PurchaseRequestModel) (*purchase.PurchaseRequest, error) {
	if model == nil {
		return nil, nil
	}

	status := purchase.RequestStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid request status: %s", model.Status)
	}

	target, err := purchase.NewUnitRef(purchase.UnitKind(model.TargetType), model.TargetID)
	if err != nil {
		return nil, fmt.Errorf("invalid target reference: %w", err)
	}

	var metadata map[string]any
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := purchase.ReconstructPurchaseRequest(
		model.ID,
		model.SID,
		model.UserID,
		target,
		status,
		metadata,
		model.RespondedAt,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct purchase request entity: %w", err)
	}

	return entity, nil
}

func (m *PurchaseRequestMapperImpl) ToModel(entity *purchase.PurchaseRequest) (*models.PurchaseRequestModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata []byte
	if len(entity.Metadata()) > 0 {
		data, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = data
	}

	model := &models.PurchaseRequestModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		UserID:      entity.UserID(),
		TargetType:  entity.Target().Kind.String(),
		TargetID:    entity.Target().ID,
		Status:      entity.Status().String(),
		Metadata:    metadata,
		RespondedAt: entity.RespondedAt(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}

	// Only pending rows participate in the duplicate-pending unique index
	if entity.IsPending() {
		active := uint8(1)
		model.Active = &active
	}

	return model, nil
}

func (m *PurchaseRequestMapperImpl) ToEntities(requestModels []*models.PurchaseRequestModel) ([]*purchase.PurchaseRequest, error) {
	entities := make([]*purchase.PurchaseRequest, 0, len(requestModels))
	for _, model := range requestModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
