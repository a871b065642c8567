package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

// Pack acceptance grants every sub-unit beneath it, server-side, without a
// sub-unit request ever existing.
func TestCheckAccess_InheritedFromPack(t *testing.T) {
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

	check, err := f.check.Execute(ctx, CheckAccessQuery{
		UserID: 1, TargetKind: purchase.UnitKindSubUnit, TargetID: 9,
	})
	require.NoError(t, err)

	assert.True(t, check.Decision.Granted)
	assert.True(t, check.Decision.Inherited)
	assert.Equal(t, entitlement.AccessStatusAccepted, check.Decision.Status)
	assert.Equal(t, packResult.Request.ID(), check.Decision.RequestID)
}

func TestCheckAccess_UsesCache(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	query := CheckAccessQuery{UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4}

	_, err := f.check.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.setCount)

	_, err = f.check.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.getHitCount)
	assert.Equal(t, 1, f.cache.setCount)
}

func TestCheckAccess_CacheInvalidatedBySubmit(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()

	query := CheckAccessQuery{UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4}

	first, err := f.check.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, entitlement.AccessStatusNone, first.Decision.Status)

	_, err = f.submit.Execute(ctx, SubmitRequestCommand{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)

	// The stale "none" decision must not survive the submission
	second, err := f.check.Execute(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, entitlement.AccessStatusPending, second.Decision.Status)
}

// The usecase works without a cache configured.
func TestCheckAccess_NilCache(t *testing.T) {
	catalogRepo := newMemCatalogRepo()
	catalogRepo.addPack(4, "pack-4")
	requestRepo := newMemRequestRepo()

	check := NewCheckAccessUseCase(requestRepo, catalogRepo, nil, logger.NewLogger())

	result, err := check.Execute(context.Background(), CheckAccessQuery{
		UserID: 1, TargetKind: purchase.UnitKindPack, TargetID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, entitlement.AccessStatusNone, result.Decision.Status)
}
