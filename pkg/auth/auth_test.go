package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok-123")
	r.Header.Set("X-User-ID", "user-1")

	id, ok := FromRequest(r)
	require.True(t, ok)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "tok-123", id.Token)
}

func TestFromRequest_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := FromRequest(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "tok-without-scheme")
	r.Header.Set("X-User-ID", "user-1")
	_, ok = FromRequest(r)
	assert.False(t, ok)
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TokenFromContext(ctx))

	ctx = NewContext(ctx, Identity{UserID: "user-1", Token: "tok"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "tok", TokenFromContext(ctx))
}
