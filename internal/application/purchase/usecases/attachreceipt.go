package usecases

import (
	"context"
	"fmt"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

type AttachReceiptCommand struct {
	RequestID uint
	FileRef   string // Opaque reference produced by the upload collaborator
}

type AttachReceiptResult struct {
	Receipt *purchase.Receipt
}

// AttachReceiptUseCase records an uploaded proof-of-payment reference
// against a pending request. A second upload replaces the first; attaching
// never changes the request's entitlement state, only the evidence the
// admin reviews.
type AttachReceiptUseCase struct {
	requestRepo purchase.RequestRepository
	receiptRepo purchase.ReceiptRepository
	logger      logger.Interface
}

func NewAttachReceiptUseCase(
	requestRepo purchase.RequestRepository,
	receiptRepo purchase.ReceiptRepository,
	logger logger.Interface,
) *AttachReceiptUseCase {
	return &AttachReceiptUseCase{
		requestRepo: requestRepo,
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// ExecuteBySID resolves the request's Stripe-style ID and delegates to Execute.
func (uc *AttachReceiptUseCase) ExecuteBySID(ctx context.Context, sid, fileRef string) (*AttachReceiptResult, error) {
	request, err := uc.requestRepo.GetBySID(ctx, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to get purchase request", "request_sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}
	return uc.Execute(ctx, AttachReceiptCommand{RequestID: request.ID(), FileRef: fileRef})
}

func (uc *AttachReceiptUseCase) Execute(ctx context.Context, cmd AttachReceiptCommand) (*AttachReceiptResult, error) {
	request, err := uc.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to get purchase request", "request_id", cmd.RequestID, "error", err)
		return nil, fmt.Errorf("failed to get purchase request: %w", err)
	}

	if !request.IsPending() {
		return nil, errors.NewConflictError(
			"receipt can only be attached to a pending request",
			fmt.Sprintf("request status: %s", request.Status()),
		)
	}

	receipt, err := uc.receiptRepo.GetByRequestID(ctx, cmd.RequestID)
	switch {
	case err == nil:
		// Last write wins: replace the stored reference
		if err := receipt.Replace(cmd.FileRef); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	case errors.IsNotFoundError(err):
		receipt, err = purchase.NewReceipt(cmd.RequestID, cmd.FileRef)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	default:
		uc.logger.Errorw("failed to get receipt", "request_id", cmd.RequestID, "error", err)
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	if err := uc.receiptRepo.Save(ctx, receipt); err != nil {
		uc.logger.Errorw("failed to save receipt", "request_id", cmd.RequestID, "error", err)
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	uc.logger.Infow("receipt attached",
		"request_id", cmd.RequestID,
		"receipt_sid", receipt.SID())

	return &AttachReceiptResult{Receipt: receipt}, nil
}
