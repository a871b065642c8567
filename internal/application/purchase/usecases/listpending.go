package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/application/purchase/dto"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type ListPendingRequestsResult struct {
	Requests []dto.RequestDTO
}

// ListPendingRequestsUseCase returns the admin review queue: all pending
// requests, oldest first, with receipt references joined in.
type ListPendingRequestsUseCase struct {
	requestRepo purchase.RequestRepository
	receiptRepo purchase.ReceiptRepository
	logger      logger.Interface
}

func NewListPendingRequestsUseCase(
	requestRepo purchase.RequestRepository,
	receiptRepo purchase.ReceiptRepository,
	logger logger.Interface,
) *ListPendingRequestsUseCase {
	return &ListPendingRequestsUseCase{
		requestRepo: requestRepo,
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

func (uc *ListPendingRequestsUseCase) Execute(ctx context.Context) (*ListPendingRequestsResult, error) {
	requests, err := uc.requestRepo.ListPending(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list pending requests", "error", err)
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	requestIDs := make([]uint, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID()
	}

	receipts, err := uc.receiptRepo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		uc.logger.Errorw("failed to list receipts", "error", err)
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return &ListPendingRequestsResult{Requests: dto.RequestsToDTOs(requests, receipts)}, nil
}
