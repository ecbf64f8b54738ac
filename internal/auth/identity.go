package auth

import "context"

// Identity is the verified caller extracted from a bearer credential. It is
// built strictly from token claims, lives for one request, and is never
// persisted.
type Identity struct {
	SubjectID   string
	DisplayName string
	Roles       []string
}

type identityContextKey struct{}

// WithIdentity returns a context carrying the verified caller.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext retrieves the verified caller placed by the transport
// middleware. The second return is false when no identity was attached.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}
