package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

func newAttachFixture(t *testing.T) (*submitFixture, *AttachReceiptUseCase, *purchase.PurchaseRequest) {
	t.Helper()

	f := newSubmitFixture(t)
	attach := NewAttachReceiptUseCase(f.requestRepo, f.receiptRepo, logger.NewLogger())

	result, err := f.submit.Execute(context.Background(), SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	return f, attach, result.Request
}

func TestAttachReceipt_CreatesRecord(t *testing.T) {
	f, attach, request := newAttachFixture(t)
	ctx := context.Background()

	result, err := attach.Execute(ctx, AttachReceiptCommand{
		RequestID: request.ID(),
		FileRef:   "uploads/2026/rc-001.png",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Receipt.ID())
	assert.Equal(t, request.ID(), result.Receipt.RequestID())
	assert.Equal(t, "uploads/2026/rc-001.png", result.Receipt.FileRef())

	stored, err := f.receiptRepo.GetByRequestID(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, result.Receipt.SID(), stored.SID())
}

// A second upload replaces the stored reference; one record per request.
func TestAttachReceipt_SecondUploadReplaces(t *testing.T) {
	f, attach, request := newAttachFixture(t)
	ctx := context.Background()

	first, err := attach.Execute(ctx, AttachReceiptCommand{
		RequestID: request.ID(),
		FileRef:   "uploads/rc-first.png",
	})
	require.NoError(t, err)

	second, err := attach.Execute(ctx, AttachReceiptCommand{
		RequestID: request.ID(),
		FileRef:   "uploads/rc-second.png",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Receipt.ID(), second.Receipt.ID())
	assert.Equal(t, "uploads/rc-second.png", second.Receipt.FileRef())

	stored, err := f.receiptRepo.GetByRequestID(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, "uploads/rc-second.png", stored.FileRef())
}

func TestAttachReceipt_RequestNotFound(t *testing.T) {
	_, attach, _ := newAttachFixture(t)

	_, err := attach.Execute(context.Background(), AttachReceiptCommand{
		RequestID: 999,
		FileRef:   "uploads/rc.png",
	})
	assert.True(t, errors.IsNotFoundError(err))
}

// Attaching evidence to an already-decided request is rejected for both
// terminal verdicts and for rejection.
func TestAttachReceipt_NonPendingRequest(t *testing.T) {
	tests := []struct {
		name    string
		verdict purchase.RequestStatus
	}{
		{"accepted request", purchase.RequestStatusAccepted},
		{"rejected request", purchase.RequestStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, attach, request := newAttachFixture(t)
			ctx := context.Background()

			_, err := f.review.Execute(ctx, ReviewRequestCommand{
				RequestID: request.ID(),
				Verdict:   tt.verdict,
			})
			require.NoError(t, err)

			_, err = attach.Execute(ctx, AttachReceiptCommand{
				RequestID: request.ID(),
				FileRef:   "uploads/rc.png",
			})
			assert.True(t, errors.IsConflictError(err))
		})
	}
}

// Attaching a receipt does not move the request out of pending.
func TestAttachReceipt_StatusUnchanged(t *testing.T) {
	f, attach, request := newAttachFixture(t)
	ctx := context.Background()

	_, err := attach.Execute(ctx, AttachReceiptCommand{
		RequestID: request.ID(),
		FileRef:   "uploads/rc.png",
	})
	require.NoError(t, err)

	reloaded, err := f.requestRepo.GetByID(ctx, request.ID())
	require.NoError(t, err)
	assert.Equal(t, purchase.RequestStatusPending, reloaded.Status())
}

func TestAttachReceipt_EmptyFileRef(t *testing.T) {
	_, attach, request := newAttachFixture(t)

	_, err := attach.Execute(context.Background(), AttachReceiptCommand{
		RequestID: request.ID(),
		FileRef:   "",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}
