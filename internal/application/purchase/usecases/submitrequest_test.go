package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/errors"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

// =====================================================================
// Test fixture
// =====================================================================

type submitFixture struct {
	requestRepo *memRequestRepo
	receiptRepo *memReceiptRepo
	catalogRepo *memCatalogRepo
	cache       *spyDecisionCache
	submit      *SubmitRequestUseCase
	review      *ReviewRequestUseCase
	check       *CheckAccessUseCase
}

func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()

	catalogRepo := newMemCatalogRepo()
	catalogRepo.addPack(4, "pack-4")
	catalogRepo.addSubUnit(2, 4, "subunit-2")
	catalogRepo.addSubUnit(9, 4, "subunit-9")

	requestRepo := newMemRequestRepo()
	receiptRepo := newMemReceiptRepo()
	cache := newSpyDecisionCache()
	log := logger.NewLogger()

	return &submitFixture{
		requestRepo: requestRepo,
		receiptRepo: receiptRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		submit:      NewSubmitRequestUseCase(requestRepo, catalogRepo, cache, log),
		review:      NewReviewRequestUseCase(requestRepo, cache, log),
		check:       NewCheckAccessUseCase(requestRepo, catalogRepo, cache, log),
	}
}

// =====================================================================
// Submission
// =====================================================================

func TestSubmitRequest_CreatesPendingRequest(t *testing.T) {
	f := newSubmitFixture(t)

	result, err := f.submit.Execute(context.Background(), SubmitRequestCommand{
		UserID:     1,
		TargetKind: purchase.UnitKindPack,
		TargetID:   4,
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Request.ID())
	assert.Equal(t, purchase.RequestStatusPending, result.Request.Status())
	assert.Nil(t, result.Request.RespondedAt())
	assert.Equal(t, []uint{1}, f.cache.invalidated)
}

func TestSubmitRequest_UnknownUnit(t *testing.T) {
	f := newSubmitFixture(t)

	_, err := f.submit.Execute(context.Background(), SubmitRequestCommand{
		UserID:     1,
		TargetKind: purchase.UnitKindPack,
		TargetID:   99,
	})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = f.submit.Execute(context.Background(), SubmitRequestCommand{
		UserID:     1,
		TargetKind: purchase.UnitKindSubUnit,
		TargetID:   99,
	})
	assert.True(t, errors.IsNotFoundError(err))
}

// A second submission while the first is pending is rejected and creates no
// new store record.
func TestSubmitRequest_DuplicateWhilePending(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	_, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	_, err = f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	assert.True(t, errors.IsConflictError(err))
	assert.Equal(t, 1, f.requestRepo.count())
}

// Resubmission after rejection creates a new request and leaves the
// rejected one untouched.
func TestSubmitRequest_ResubmitAfterRejection(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	first, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	_, err = f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: first.Request.ID(),
		Verdict:   purchase.RequestStatusRejected,
	})
	require.NoError(t, err)

	second, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Request.ID(), second.Request.ID())

	old, err := f.requestRepo.GetByID(ctx, first.Request.ID())
	require.NoError(t, err)
	assert.Equal(t, purchase.RequestStatusRejected, old.Status())
	assert.Equal(t, 2, f.requestRepo.count())
}

// An accepted pack blocks new submissions for its sub-units: access is
// already inherited.
func TestSubmitRequest_BlockedByInheritedAcceptance(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	packResult, err := f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	_, err = f.review.Execute(ctx, ReviewRequestCommand{
		RequestID: packResult.Request.ID(),
		Verdict:   purchase.RequestStatusAccepted,
	})
	require.NoError(t, err)

	_, err = f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindSubUnit, TargetID: 9,
	})
	assert.True(t, errors.IsConflictError(err))
}

// The store-level constraint still rejects a duplicate when the resolver
// pre-check is bypassed (two submissions racing past it).
func TestSubmitRequest_StoreBackstop(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	existing, err := purchase.NewPurchaseRequest(1, purchase.UnitRef{Kind: purchase.UnitKindPack, ID: 4}, nil)
	require.NoError(t, err)
	require.NoError(t, f.requestRepo.Create(ctx, existing))

	racing, err := purchase.NewPurchaseRequest(1, purchase.UnitRef{Kind: purchase.UnitKindPack, ID: 4}, nil)
	require.NoError(t, err)
	err = f.requestRepo.Create(ctx, racing)
	assert.True(t, errors.IsConflictError(err))
}

// =====================================================================
// Submit then check (pack level)
// =====================================================================

func TestSubmitThenCheckAccess(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	// No requests yet: purchasable, not viewable
	check, err := f.check.Execute(ctx, CheckAccessQuery{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)
	assert.True(t, entitlement.CanPurchase(check.Decision))
	assert.False(t, entitlement.CanView(check.Decision))

	_, err = f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	check, err = f.check.Execute(ctx, CheckAccessQuery{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, entitlement.AccessStatusPending, check.Decision.Status)
	assert.False(t, entitlement.CanPurchase(check.Decision))
}
