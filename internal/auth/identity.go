package auth

import "context"

// Identity is the caller as asserted by the auth collaborator.
// The zero value is an anonymous caller.
type Identity struct {
	UserID string
	Email  string
}

// Anonymous reports whether no user is attached
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

type identityKey struct{}

// WithIdentity attaches an identity to the context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the caller identity, anonymous if none is attached
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
