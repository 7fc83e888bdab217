package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller: the backend user id plus the bearer
// token forwarded on every backend call. The storefront never validates the
// token itself; the backend is the authority.
type Identity struct {
	UserID string
	Token  string
}

// NewContext stores the identity in the context.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// TokenFromContext returns the bearer token, or "".
func TokenFromContext(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.Token
}

// FromRequest extracts the identity from the Authorization header and the
// X-User-ID header. Both must be present for ok to be true.
func FromRequest(r *http.Request) (Identity, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	userID := r.Header.Get("X-User-ID")
	if token == "" || token == r.Header.Get("Authorization") || userID == "" {
		return Identity{}, false
	}
	return Identity{UserID: userID, Token: token}, true
}
