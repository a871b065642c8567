package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
)

// resolveUnit validates that the referenced content unit exists and, for
// sub-units, resolves the owning pack reference used for hierarchical
// inheritance.
func resolveUnit(ctx context.Context, catalogRepo catalog.Repository, target purchase.UnitRef) (*purchase.UnitRef, error) {
	switch target.Kind {
	case purchase.UnitKindPack:
		if _, err := catalogRepo.GetPackByID(ctx, target.ID); err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewNotFoundError("pack not found")
			}
			return nil, fmt.Errorf("failed to get pack: %w", err)
		}
		return nil, nil

	case purchase.UnitKindSubUnit:
		subUnit, err := catalogRepo.GetSubUnitByID(ctx, target.ID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewNotFoundError("sub-unit not found")
			}
			return nil, fmt.Errorf("failed to get sub-unit: %w", err)
		}
		parent := purchase.UnitRef{Kind: purchase.UnitKindPack, ID: subUnit.PackID()}
		return &parent, nil

	default:
		return nil, errors.NewValidationError(fmt.Sprintf("invalid unit kind: %s", target.Kind))
	}
}
