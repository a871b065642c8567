package mappers

import (
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/infrastructure/persistence/models"
)

type CatalogMapper interface {
	PackToEntity(model *models.PackModel) (*catalog.Pack, error)
	PackToModel(entity *catalog.Pack) (*models.PackModel, error)
	PacksToEntities(models []*models.PackModel) ([]*catalog.Pack, error)
	SubUnitToEntity(model *models.SubUnitModel) (*catalog.SubUnit, error)
	SubUnitToModel(entity *catalog.SubUnit) (*models.SubUnitModel, error)
	SubUnitsToEntities(models []*models.SubUnitModel) ([]*catalog.SubUnit, error)
}

type CatalogMapperImpl struct{}

func NewCatalogMapper() CatalogMapper {
	return &CatalogMapperImpl{}
}

func (m *CatalogMapperImpl) PackToEntity(model *models.PackModel) (*catalog.Pack, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructPack(
		model.ID,
		model.Title,
		model.Slug,
		model.Description,
		model.PriceCents,
		model.Published,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct pack entity: %w", err)
	}

	return entity, nil
}

func (m *CatalogMapperImpl) PackToModel(entity *catalog.Pack) (*models.PackModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PackModel{
		ID:          entity.ID(),
		Title:       entity.Title(),
		Slug:        entity.Slug(),
		Description: entity.Description(),
		PriceCents:  entity.PriceCents(),
		Published:   entity.Published(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *CatalogMapperImpl) PacksToEntities(packModels []*models.PackModel) ([]*catalog.Pack, error) {
	entities := make([]*catalog.Pack, 0, len(packModels))
	for _, model := range packModels {
		entity, err := m.PackToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *CatalogMapperImpl) SubUnitToEntity(model *models.SubUnitModel) (*catalog.SubUnit, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructSubUnit(
		model.ID,
		model.PackID,
		model.Title,
		model.Slug,
		model.PriceCents,
		model.Published,
		model.SortOrder,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct sub-unit entity: %w", err)
	}

	return entity, nil
}

func (m *CatalogMapperImpl) SubUnitToModel(entity *catalog.SubUnit) (*models.SubUnitModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubUnitModel{
		ID:         entity.ID(),
		PackID:     entity.PackID(),
		Title:      entity.Title(),
		Slug:       entity.Slug(),
		PriceCents: entity.PriceCents(),
		Published:  entity.Published(),
		SortOrder:  entity.SortOrder(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *CatalogMapperImpl) SubUnitsToEntities(subUnitModels []*models.SubUnitModel) ([]*catalog.SubUnit, error) {
	entities := make([]*catalog.SubUnit, 0, len(subUnitModels))
	for _, model := range subUnitModels {
		entity, err := m.SubUnitToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
