package dto

import (
	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
)

// RequestToDTO converts a purchase request to its API representation.
// receiptRef is empty when no receipt is attached.
func RequestToDTO(r *purchase.PurchaseRequest, receiptRef string) RequestDTO {
	return RequestDTO{
		ID:          r.ID(),
		SID:         r.SID(),
		UserID:      r.UserID(),
		TargetKind:  r.Target().Kind.String(),
		TargetID:    r.Target().ID,
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		RespondedAt: r.RespondedAt(),
		ReceiptRef:  receiptRef,
	}
}

// RequestsToDTOs converts a request list, joining in receipt references
// keyed by request ID.
func RequestsToDTOs(requests []*purchase.PurchaseRequest, receipts []*purchase.Receipt) []RequestDTO {
	refsByRequest := make(map[uint]string, len(receipts))
	for _, rc := range receipts {
		refsByRequest[rc.RequestID()] = rc.FileRef()
	}

	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = RequestToDTO(r, refsByRequest[r.ID()])
	}
	return dtos
}

// ReceiptToDTO converts a receipt to its API representation.
func ReceiptToDTO(rc *purchase.Receipt) ReceiptDTO {
	return ReceiptDTO{
		ID:         rc.ID(),
		SID:        rc.SID(),
		RequestID:  rc.RequestID(),
		ReceiptRef: rc.FileRef(),
		UploadedAt: rc.UploadedAt(),
	}
}

// DecisionToDTO converts an access decision to its API representation.
func DecisionToDTO(d entitlement.AccessDecision) AccessDecisionDTO {
	return AccessDecisionDTO{
		HasAccess: d.Granted,
		Status:    d.Status.String(),
		RequestID: d.RequestID,
		Inherited: d.Inherited,
	}
}
