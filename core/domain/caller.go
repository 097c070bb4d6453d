// ABOUTME: Caller identifies the authenticated session behind a request
// ABOUTME: Roles scope which rows a caller may see and delete

package domain

import "context"

// Role is the access level of a caller
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Caller is the identity attached to a request by the auth layer
type Caller struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the caller has the elevated role
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type callerKey struct{}

// WithCaller stores the caller in ctx
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the caller stored in ctx
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok && c.UserID != ""
}
