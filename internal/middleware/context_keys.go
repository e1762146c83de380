package middleware

// ContextKey is a private key type so context values cannot collide
// with other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's ID (hex string).
	UserIDCtxKey = ContextKey("user_id")

	// UserRoleCtxKey holds the authenticated user's role.
	UserRoleCtxKey = ContextKey("user_role")
)
