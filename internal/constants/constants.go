package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyTenantID = "tenant_id"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8
