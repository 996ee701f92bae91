package user

import "context"

// Session is the authenticated caller, rebuilt from the access token on
// every request and passed explicitly into services.
type Session struct {
	UserID       string
	EmployeeID   string
	Email        string
	Role         Role
	Capabilities CapabilitySet
}

func (s Session) Can(c Capability) bool {
	return s.Capabilities.Has(c)
}

// IsPrivileged reports whether the caller can act on any employee's records.
func (s Session) IsPrivileged() bool {
	return s.Role == RoleAdmin || s.Role == RoleHR
}

// CanAccessEmployee allows privileged roles everywhere and everyone else on
// their own employee record.
func (s Session) CanAccessEmployee(employeeID string) bool {
	return s.IsPrivileged() || s.Role == RoleManager || s.EmployeeID == employeeID
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
