package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/catalog"
	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type CheckAccessQuery struct {
	UserID     uint
	TargetKind purchase.UnitKind
	TargetID   uint
}

type CheckAccessResult struct {
	Decision entitlement.AccessDecision
}

// CheckAccessUseCase resolves the access decision for one (user, unit)
// pair, reflecting hierarchical inheritance server-side. Decisions are
// read through the optional cache; resolution itself never fails, so any
// error here comes from the unit lookup or the request fetch.
type CheckAccessUseCase struct {
	requestRepo purchase.RequestRepository
	catalogRepo catalog.Repository
	cache       DecisionCache // Optional
	logger      logger.Interface
}

func NewCheckAccessUseCase(
	requestRepo purchase.RequestRepository,
	catalogRepo catalog.Repository,
	cache DecisionCache,
	logger logger.Interface,
) *CheckAccessUseCase {
	return &CheckAccessUseCase{
		requestRepo: requestRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, query CheckAccessQuery) (*CheckAccessResult, error) {
	target, err := purchase.NewUnitRef(query.TargetKind, query.TargetID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if uc.cache != nil {
		if decision, ok, cacheErr := uc.cache.Get(ctx, query.UserID, target); cacheErr != nil {
			uc.logger.Warnw("decision cache read failed", "user_id", query.UserID, "error", cacheErr)
		} else if ok {
			return &CheckAccessResult{Decision: decision}, nil
		}
	}

	parentPack, err := resolveUnit(ctx, uc.catalogRepo, target)
	if err != nil {
		return nil, err
	}

	requests, err := uc.requestRepo.ListByUser(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list user requests", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	decision := entitlement.Resolve(target, parentPack, requests)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, query.UserID, target, decision); err != nil {
			uc.logger.Warnw("decision cache write failed", "user_id", query.UserID, "error", err)
		}
	}

	return &CheckAccessResult{Decision: decision}, nil
}
