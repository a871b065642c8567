package purchase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newPendingRequest creates a request with sensible defaults for testing.
func newPendingRequest(t *testing.T) *PurchaseRequest {
	t.Helper()
	r, err := NewPurchaseRequest(1, UnitRef{Kind: UnitKindPack, ID: 4}, nil)
	require.NoError(t, err)
	return r
}

// reconstructedRequest builds a persisted-style request via
// ReconstructPurchaseRequest.
func reconstructedRequest(t *testing.T, status RequestStatus) *PurchaseRequest {
	t.Helper()
	now := time.Now().UTC()
	var responded *time.Time
	if status != RequestStatusPending {
		responded = &now
	}
	r, err := ReconstructPurchaseRequest(
		7, "pr_xK9mP2vL3nQw",
		10,
		UnitRef{Kind: UnitKindSubUnit, ID: 2},
		status,
		nil,
		responded,
		now, now,
		1,
	)
	require.NoError(t, err)
	return r
}

// ---------------------------------------------------------------------------
// Constructor tests
// ---------------------------------------------------------------------------

func TestNewPurchaseRequest_ValidInput(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		target UnitRef
	}{
		{name: "pack request", userID: 1, target: UnitRef{Kind: UnitKindPack, ID: 4}},
		{name: "sub-unit request", userID: 42, target: UnitRef{Kind: UnitKindSubUnit, ID: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewPurchaseRequest(tt.userID, tt.target, nil)
			require.NoError(t, err)

			assert.Zero(t, r.ID())
			assert.Equal(t, tt.userID, r.UserID())
			assert.True(t, r.Target().Equal(tt.target))
			assert.Equal(t, RequestStatusPending, r.Status())
			assert.Nil(t, r.RespondedAt())
			assert.Equal(t, 1, r.Version())
			assert.True(t, strings.HasPrefix(r.SID(), "pr_"))
		})
	}
}

func TestNewPurchaseRequest_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		target UnitRef
	}{
		{name: "missing user", userID: 0, target: UnitRef{Kind: UnitKindPack, ID: 4}},
		{name: "missing unit ID", userID: 1, target: UnitRef{Kind: UnitKindPack, ID: 0}},
		{name: "invalid kind", userID: 1, target: UnitRef{Kind: UnitKind("bundle"), ID: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewPurchaseRequest(tt.userID, tt.target, nil)
			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}

func TestReconstructPurchaseRequest_RejectsInvalidStatus(t *testing.T) {
	now := time.Now()
	r, err := ReconstructPurchaseRequest(1, "pr_x", 1, UnitRef{Kind: UnitKindPack, ID: 4},
		RequestStatus("approved"), nil, nil, now, now, 1)
	assert.Error(t, err)
	assert.Nil(t, r)
}

// ---------------------------------------------------------------------------
// Status transition tests
// ---------------------------------------------------------------------------

func TestPurchaseRequest_Accept(t *testing.T) {
	r := newPendingRequest(t)

	err := r.Accept()
	require.NoError(t, err)

	assert.Equal(t, RequestStatusAccepted, r.Status())
	require.NotNil(t, r.RespondedAt())
	assert.Equal(t, 2, r.Version())
}

func TestPurchaseRequest_Reject(t *testing.T) {
	r := newPendingRequest(t)

	err := r.Reject()
	require.NoError(t, err)

	assert.Equal(t, RequestStatusRejected, r.Status())
	require.NotNil(t, r.RespondedAt())
}

func TestPurchaseRequest_AcceptedIsTerminal(t *testing.T) {
	r := reconstructedRequest(t, RequestStatusAccepted)

	assert.ErrorIs(t, r.Accept(), ErrRequestTerminal)
	assert.ErrorIs(t, r.Reject(), ErrRequestTerminal)
	assert.Equal(t, RequestStatusAccepted, r.Status())
}

func TestPurchaseRequest_RejectedCannotTransition(t *testing.T) {
	r := reconstructedRequest(t, RequestStatusRejected)

	assert.Error(t, r.Accept())
	assert.Error(t, r.Reject())
	assert.Equal(t, RequestStatusRejected, r.Status())
}

func TestPurchaseRequest_SetID(t *testing.T) {
	r := newPendingRequest(t)

	require.NoError(t, r.SetID(12))
	assert.Equal(t, uint(12), r.ID())

	// Already set
	assert.Error(t, r.SetID(13))
	assert.Error(t, r.SetID(0))
}

// ---------------------------------------------------------------------------
// Value object tests
// ---------------------------------------------------------------------------

func TestRequestStatus_IsActive(t *testing.T) {
	assert.True(t, RequestStatusPending.IsActive())
	assert.True(t, RequestStatusAccepted.IsActive())
	assert.False(t, RequestStatusRejected.IsActive())
}

func TestUnitRef_Equal(t *testing.T) {
	pack4 := UnitRef{Kind: UnitKindPack, ID: 4}
	sub4 := UnitRef{Kind: UnitKindSubUnit, ID: 4}

	assert.True(t, pack4.Equal(UnitRef{Kind: UnitKindPack, ID: 4}))
	// Same numeric ID, different kind: different unit
	assert.False(t, pack4.Equal(sub4))
	assert.False(t, pack4.Equal(UnitRef{Kind: UnitKindPack, ID: 5}))
}

func TestNewUnitRef(t *testing.T) {
	ref, err := NewUnitRef(UnitKindSubUnit, 9)
	require.NoError(t, err)
	assert.Equal(t, "subunit:9", ref.String())

	_, err = NewUnitRef(UnitKind("bundle"), 9)
	assert.Error(t, err)

	_, err = NewUnitRef(UnitKindPack, 0)
	assert.Error(t, err)
}
