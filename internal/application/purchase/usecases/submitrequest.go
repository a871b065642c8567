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

type SubmitRequestCommand struct {
	UserID     uint
	TargetKind purchase.UnitKind
	TargetID   uint
	Metadata   map[string]any // Optional client context (origin, note)
}

type SubmitRequestResult struct {
	Request *purchase.PurchaseRequest
}

// SubmitRequestUseCase creates a new pending purchase request. The resolver
// pre-check rejects submissions for units with an in-flight or accepted
// request; the store's duplicate-pending constraint is the authoritative
// backstop when two submissions race past the check.
type SubmitRequestUseCase struct {
	requestRepo purchase.RequestRepository
	catalogRepo catalog.Repository
	cache       DecisionCache // Optional
	logger      logger.Interface
}

func NewSubmitRequestUseCase(
	requestRepo purchase.RequestRepository,
	catalogRepo catalog.Repository,
	cache DecisionCache,
	logger logger.Interface,
) *SubmitRequestUseCase {
	return &SubmitRequestUseCase{
		requestRepo: requestRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (uc *SubmitRequestUseCase) Execute(ctx context.Context, cmd SubmitRequestCommand) (*SubmitRequestResult, error) {
	target, err := purchase.NewUnitRef(cmd.TargetKind, cmd.TargetID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	parentPack, err := resolveUnit(ctx, uc.catalogRepo, target)
	if err != nil {
		return nil, err
	}

	existing, err := uc.requestRepo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list user requests", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	decision := entitlement.Resolve(target, parentPack, existing)
	if !entitlement.CanPurchase(decision) {
		uc.logger.Infow("submission blocked by active request",
			"user_id", cmd.UserID,
			"target", target.String(),
			"status", decision.Status)
		return nil, errors.NewConflictError(
			"an active request already exists for this content unit",
			fmt.Sprintf("current status: %s", decision.Status),
		)
	}

	request, err := purchase.NewPurchaseRequest(cmd.UserID, target, cmd.Metadata)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		// A concurrent submission may have won the race; the store-level
		// uniqueness on pending requests surfaces as a conflict here.
		if errors.IsConflictError(err) {
			uc.logger.Warnw("duplicate pending request rejected by store",
				"user_id", cmd.UserID,
				"target", target.String())
			return nil, err
		}
		uc.logger.Errorw("failed to create purchase request",
			"user_id", cmd.UserID,
			"target", target.String(),
			"error", err)
		return nil, fmt.Errorf("failed to create purchase request: %w", err)
	}

	uc.invalidateCache(ctx, cmd.UserID)

	uc.logger.Infow("purchase request submitted",
		"request_id", request.ID(),
		"request_sid", request.SID(),
		"user_id", cmd.UserID,
		"target", target.String())

	return &SubmitRequestResult{Request: request}, nil
}

func (uc *SubmitRequestUseCase) invalidateCache(ctx context.Context, userID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateUser(ctx, userID); err != nil {
		uc.logger.Warnw("failed to invalidate decision cache", "user_id", userID, "error", err)
	}
}
