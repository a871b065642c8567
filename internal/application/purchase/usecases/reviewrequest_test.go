package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
)

func TestReviewRequest_Accept(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	submitted, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	result, err := f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: submitted.Request.ID(),
		Verdict:   purchase.RequestStatusAccepted,
	})
	require.NoError(t, err)

	assert.Equal(t, purchase.RequestStatusAccepted, result.Request.Status())
	assert.NotNil(t, result.Request.RespondedAt())
	assert.Contains(t, f.cache.invalidated, uint(1))
}

func TestReviewRequest_Reject(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	submitted, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindSubUnit, TargetID: 2,
	})
	require.NoError(t, err)

	result, err := f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: submitted.Request.ID(),
		Verdict:   purchase.RequestStatusRejected,
	})
	require.NoError(t, err)

	assert.Equal(t, purchase.RequestStatusRejected, result.Request.Status())
	assert.NotNil(t, result.Request.RespondedAt())
}

func TestReviewRequest_InvalidVerdict(t *testing.T) {
	f := newSubmitFixture(t)

	_, err := f.review.Execute(context.Background(), ReviewRequestCommand{
		RequestID: 1,
		Verdict:   purchase.RequestStatusPending,
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestReviewRequest_NotFound(t *testing.T) {
	f := newSubmitFixture(t)

	_, err := f.review.Execute(context.Background(), ReviewRequestCommand{
		RequestID: 999,
		Verdict:   purchase.RequestStatusAccepted,
	})
	assert.True(t, errors.IsNotFoundError(err))
}

// Acceptance is final. Neither re-acceptance nor a late rejection can
// change a decided request.
func TestReviewRequest_AcceptedIsTerminal(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	submitted, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	_, err = f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: submitted.Request.ID(),
		Verdict:   purchase.RequestStatusAccepted,
	})
	require.NoError(t, err)

	for _, verdict := range []purchase.RequestStatus{
		purchase.RequestStatusAccepted,
		purchase.RequestStatusRejected,
	} {
		_, err = f.review.Execute(ctx, ReviewRequestCommand{
			RequestID: submitted.Request.ID(),
			Verdict:   verdict,
		})
		assert.True(t, errors.IsConflictError(err))
	}

	reloaded, err := f.requestRepo.GetByID(ctx, submitted.Request.ID())
	require.NoError(t, err)
	assert.Equal(t, purchase.RequestStatusAccepted, reloaded.Status())
}

func TestReviewRequest_RejectedCannotBeReReviewed(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	submitted, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	_, err = f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: submitted.Request.ID(),
		Verdict:   purchase.RequestStatusRejected,
	})
	require.NoError(t, err)

	_, err = f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: submitted.Request.ID(),
		Verdict:   purchase.RequestStatusAccepted,
	})
	assert.True(t, errors.IsConflictError(err))
}

func TestListPendingRequests_ReviewQueue(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()
	listPending := NewListPendingRequestsUseCase(f.requestRepo, f.receiptRepo, f.submit.logger)

	first, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	_, err = f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 2, TargetKind: purchase.UnitKindSubUnit, TargetID: 9,
	})
	require.NoError(t, err)

	queue, err := listPending.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, queue.Requests, 2)

	_, err = f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: first.Request.ID(),
		Verdict:   purchase.RequestStatusAccepted,
	})
	require.NoError(t, err)

	queue, err = listPending.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, queue.Requests, 1)
	assert.Equal(t, uint(2), queue.Requests[0].UserID)
}
