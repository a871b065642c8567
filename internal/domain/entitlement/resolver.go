package entitlement

import "github.com/packlane-io/packlane/internal/domain/purchase"

// Resolve computes the access decision for one content unit from the user's
// full request set. parentPack is the owning pack reference when target is a
// sub-unit, nil otherwise.
//
// Resolution order:
//  1. An accepted request for the unit itself grants access.
//  2. For a sub-unit, an accepted request for the parent pack grants access
//     regardless of the sub-unit's own request state (pack-level acceptance
//     dominates).
//  3. Otherwise the decision carries the most advanced state among the
//     unit's own requests: pending beats rejected beats none. Access is not
//     granted.
//
// The function is deterministic and side-effect free: the same request set
// always yields the same decision.
func Resolve(target purchase.UnitRef, parentPack *purchase.UnitRef, requests []*purchase.PurchaseRequest) AccessDecision {
	own := rankRequests(target, requests)
	if own.status == purchase.RequestStatusAccepted {
		return AccessDecision{
			Granted:   true,
			Status:    AccessStatusAccepted,
			RequestID: own.requestID,
		}
	}

	if target.Kind == purchase.UnitKindSubUnit && parentPack != nil {
		pack := rankRequests(*parentPack, requests)
		if pack.status == purchase.RequestStatusAccepted {
			return AccessDecision{
				Granted:   true,
				Status:    AccessStatusAccepted,
				RequestID: pack.requestID,
				Inherited: true,
			}
		}
	}

	switch own.status {
	case purchase.RequestStatusPending:
		return AccessDecision{Status: AccessStatusPending, RequestID: own.requestID}
	case purchase.RequestStatusRejected:
		return AccessDecision{Status: AccessStatusRejected, RequestID: own.requestID}
	default:
		return AccessDecision{Status: AccessStatusNone}
	}
}

type ranked struct {
	status    purchase.RequestStatus
	requestID uint
}

// statusRank orders request states by how far along the workflow they are.
func statusRank(s purchase.RequestStatus) int {
	switch s {
	case purchase.RequestStatusAccepted:
		return 3
	case purchase.RequestStatusPending:
		return 2
	case purchase.RequestStatusRejected:
		return 1
	default:
		return 0
	}
}

// rankRequests picks the most advanced request for the given unit. Under
// the at-most-one-pending invariant the latest request is also the most
// advanced one, but ranking keeps the decision stable even when fed
// historical data that predates the invariant.
func rankRequests(target purchase.UnitRef, requests []*purchase.PurchaseRequest) ranked {
	best := ranked{}
	bestRank := 0
	for _, r := range requests {
		if !r.Target().Equal(target) {
			continue
		}
		if rank := statusRank(r.Status()); rank > bestRank {
			bestRank = rank
			best = ranked{status: r.Status(), requestID: r.ID()}
		}
	}
	return best
}
