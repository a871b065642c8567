package purchase

import "context"

// RequestRepository defines the interface for purchase request persistence.
// The store is the authoritative backstop for the at-most-one-pending
// invariant: Create must fail with a conflict when a pending request already
// exists for the same (user, unit) pair.
type RequestRepository interface {
	// Create persists a new request and assigns its ID
	Create(ctx context.Context, r *PurchaseRequest) error

	// Update persists status transitions of an existing request
	Update(ctx context.Context, r *PurchaseRequest) error

	// GetByID retrieves a request by internal ID
	GetByID(ctx context.Context, requestID uint) (*PurchaseRequest, error)

	// GetBySID retrieves a request by public SID
	GetBySID(ctx context.Context, sid string) (*PurchaseRequest, error)

	// ListByUser retrieves all requests made by a user, newest first
	ListByUser(ctx context.Context, userID uint) ([]*PurchaseRequest, error)

	// ListByUserAndKind retrieves all requests made by a user for units of
	// the given kind, newest first
	ListByUserAndKind(ctx context.Context, userID uint, kind UnitKind) ([]*PurchaseRequest, error)

	// ListPending retrieves all pending requests, oldest first (admin queue)
	ListPending(ctx context.Context) ([]*PurchaseRequest, error)
}

// ReceiptRepository defines the interface for receipt persistence.
type ReceiptRepository interface {
	// Save persists a receipt, replacing any prior receipt for the same
	// request (last write wins, exactly one record per request)
	Save(ctx context.Context, rc *Receipt) error

	// GetByRequestID retrieves the receipt attached to a request
	GetByRequestID(ctx context.Context, requestID uint) (*Receipt, error)

	// ListByRequestIDs retrieves receipts for a set of requests
	ListByRequestIDs(ctx context.Context, requestIDs []uint) ([]*Receipt, error)
}
