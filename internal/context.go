package internal

import "context"

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

const RoleAdmin = "admin"

// Identity is the verified caller attached by the request gate. Handlers read it
// from the context and never from cookies or headers.
type Identity struct {
	StaffID string `json:"staff_id"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(ContextIdentityKey).(Identity)
	if !ok || id.StaffID == "" {
		return Identity{}, false
	}
	return id, true
}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, id)
}
