package identity

import (
	"context"

	"github.com/google/uuid"
)

// Role is the account role stored on a user record. The API calls this
// field "group".
type Role string

const (
	Seller Role = "seller"
	Buyer  Role = "buyer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == Seller || r == Buyer
}

// Identity is the authenticated caller, resolved once per request by the
// auth middleware. Handlers and services receive it through the request
// context and never reach into session state themselves.
type Identity struct {
	UserID    uuid.UUID
	Role      Role
	SessionID uuid.UUID
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the caller identity set by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
