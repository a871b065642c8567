package handlers

import (
	"context"

	"github.com/packlane-io/packlane/internal/application/catalog/usecases"
)

// Use case interfaces for CatalogHandler

type createPackUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePackCommand) (*usecases.CreatePackResult, error)
}

type createSubUnitUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSubUnitCommand) (*usecases.CreateSubUnitResult, error)
}

type listPacksUseCase interface {
	Execute(ctx context.Context, query usecases.ListPacksQuery) (*usecases.ListPacksResult, error)
}

type listSubUnitsUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubUnitsQuery) (*usecases.ListSubUnitsResult, error)
}

type publishPackUseCase interface {
	Execute(ctx context.Context, cmd usecases.PublishPackCommand) (*usecases.PublishPackResult, error)
}
