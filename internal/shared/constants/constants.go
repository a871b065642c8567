// Package constants defines shared constants used across the application.
package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

const (
	// Context keys set by middleware and consumed by handlers
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

const (
	// Role names carried in auth token claims
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	// Database table names
	TablePacks            = "packs"
	TableSubUnits         = "sub_units"
	TablePurchaseRequests = "purchase_requests"
	TableReceipts         = "receipts"
)
