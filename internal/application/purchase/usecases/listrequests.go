package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/application/purchase/dto"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type ListRequestsQuery struct {
	UserID uint
	// Kind restricts the listing to one unit granularity; empty lists all
	Kind purchase.UnitKind
}

type ListRequestsResult struct {
	Requests []dto.RequestDTO
}

// ListRequestsUseCase returns a user's purchase requests with receipt
// references joined in. This feeds both the UI listing and the SDK's
// read-after-write verification.
type ListRequestsUseCase struct {
	requestRepo purchase.RequestRepository
	receiptRepo purchase.ReceiptRepository
	logger      logger.Interface
}

func NewListRequestsUseCase(
	requestRepo purchase.RequestRepository,
	receiptRepo purchase.ReceiptRepository,
	logger logger.Interface,
) *ListRequestsUseCase {
	return &ListRequestsUseCase{
		requestRepo: requestRepo,
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

func (uc *ListRequestsUseCase) Execute(ctx context.Context, query ListRequestsQuery) (*ListRequestsResult, error) {
	var requests []*purchase.PurchaseRequest
	var err error

	if query.Kind != "" {
		requests, err = uc.requestRepo.ListByUserAndKind(ctx, query.UserID, query.Kind)
	} else {
		requests, err = uc.requestRepo.ListByUser(ctx, query.UserID)
	}
	if err != nil {
		uc.logger.Errorw("failed to list user requests", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	requestIDs := make([]uint, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID()
	}

	receipts, err := uc.receiptRepo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		uc.logger.Errorw("failed to list receipts", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return &ListRequestsResult{Requests: dto.RequestsToDTOs(requests, receipts)}, nil
}
