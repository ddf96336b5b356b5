package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization      = "Authorization"
	HeaderXRequestID         = "X-Request-ID"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"

	// Context keys
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyPartner  = "partner_name"

	// Database table names
	TableRateLimitCounters = "rate_limit_counters"
	TableConsentTokens     = "consent_tokens"
	TableEncryptionKeys    = "encryption_keys"
	TableBookings          = "bookings"
	TableDeletionRequests  = "deletion_requests"
	TableAuditLogs         = "audit_logs"

	// AnonymizedValue replaces personal fields on consent records after erasure.
	AnonymizedValue = "ANONYMIZED"

	// Rate limit key namespaces
	RateLimitKeyConsent = "consent"
	RateLimitKeyAPI     = "api"

	ErrMsgInternalServerError = "Internal server error occurred"
)
