package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type ReviewRequestCommand struct {
	RequestID uint
	// Verdict is the admin's decision: accepted or rejected
	Verdict purchase.RequestStatus
}

type ReviewRequestResult struct {
	Request *purchase.PurchaseRequest
}

// ReviewRequestUseCase applies the administrator's verdict to a pending
// request. Acceptance is terminal; a rejected request stays in history and
// the user may submit a new one for the same unit.
type ReviewRequestUseCase struct {
	requestRepo purchase.RequestRepository
	cache       DecisionCache // Optional
	logger      logger.Interface
}

func NewReviewRequestUseCase(
	requestRepo purchase.RequestRepository,
	cache DecisionCache,
	logger logger.Interface,
) *ReviewRequestUseCase {
	return &ReviewRequestUseCase{
		requestRepo: requestRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ExecuteBySID resolves the request's Stripe-style ID and delegates to Execute.
func (uc *ReviewRequestUseCase) ExecuteBySID(ctx context.Context, sid string, verdict purchase.RequestStatus) (*ReviewRequestResult, error) {
	request, err := uc.requestRepo.GetBySID(ctx, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to get purchase request", "request_sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}
	return uc.Execute(ctx, ReviewRequestCommand{RequestID: request.ID(), Verdict: verdict})
}

func (uc *ReviewRequestUseCase) Execute(ctx context.Context, cmd ReviewRequestCommand) (*ReviewRequestResult, error) {
	if cmd.Verdict != purchase.RequestStatusAccepted && cmd.Verdict != purchase.RequestStatusRejected {
		return nil, errors.NewValidationError(
			fmt.Sprintf("verdict must be %s or %s", purchase.RequestStatusAccepted, purchase.RequestStatusRejected),
		)
	}

	request, err := uc.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to get purchase request", "request_id", cmd.RequestID, "error", err)
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}

	if cmd.Verdict == purchase.RequestStatusAccepted {
		err = request.Accept()
	} else {
		err = request.Reject()
	}
	if err != nil {
		return nil, errors.NewConflictError("request cannot be reviewed", err.Error())
	}

	if err := uc.requestRepo.Update(ctx, request); err != nil {
		uc.logger.Errorw("failed to update purchase request",
			"request_id", cmd.RequestID,
			"verdict", cmd.Verdict,
			"error", err)
		return nil, fmt.Errorf("failed to update purchase request: %w", err)
	}

	uc.invalidateCache(ctx, request.UserID())

	uc.logger.Infow("purchase request reviewed",
		"request_id", request.ID(),
		"user_id", request.UserID(),
		"verdict", cmd.Verdict)

	return &ReviewRequestResult{Request: request}, nil
}

func (uc *ReviewRequestUseCase) invalidateCache(ctx context.Context, userID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateUser(ctx, userID); err != nil {
		uc.logger.Warnw("failed to invalidate decision cache", "user_id", userID, "error", err)
	}
}
