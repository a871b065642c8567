package usecases

import (
	"context"

	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
)

// DecisionCache caches resolved access decisions per (user, unit) pair.
// Implementations may be backed by Redis; a cache error is treated as a
// miss by callers, never as a failure.
type DecisionCache interface {
	// Get retrieves a cached decision, returning false on a miss
	Get(ctx context.Context, userID uint, target purchase.UnitRef) (entitlement.AccessDecision, bool, error)

	// Set stores a decision for the configured TTL
	Set(ctx context.Context, userID uint, target purchase.UnitRef, d entitlement.AccessDecision) error

	// InvalidateUser drops all cached decisions for a user
	InvalidateUser(ctx context.Context, userID uint) error
}
