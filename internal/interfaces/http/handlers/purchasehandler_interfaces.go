package handlers

import (
	"context"

	"github.com/packlane-io/packlane/internal/application/purchase/usecases"
	"github.com/packlane-io/packlane/internal/domain/purchase"
)

// Use case interfaces for PurchaseHandler

type submitRequestUseCase interface {
	Execute(ctx context.Context, cmd usecases.SubmitRequestCommand) (*usecases.SubmitRequestResult, error)
}

type listRequestsUseCase interface {
	Execute(ctx context.Context, query usecases.ListRequestsQuery) (*usecases.ListRequestsResult, error)
}

type attachReceiptUseCase interface {
	ExecuteBySID(ctx context.Context, sid, fileRef string) (*usecases.AttachReceiptResult, error)
}

// Use case interfaces for AccessHandler

type checkAccessUseCase interface {
	Execute(ctx context.Context, query usecases.CheckAccessQuery) (*usecases.CheckAccessResult, error)
}

// Use case interfaces for AdminRequestHandler

type reviewRequestUseCase interface {
	ExecuteBySID(ctx context.Context, sid string, verdict purchase.RequestStatus) (*usecases.ReviewRequestResult, error)
}

type listPendingRequestsUseCase interface {
	Execute(ctx context.Context) (*usecases.ListPendingRequestsResult, error)
}
