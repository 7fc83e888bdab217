package middleware

import (
	"net/http"

	"github.com/karantec/minutos-storefront/pkg/auth"
	"github.com/karantec/minutos-storefront/pkg/httputil"
)

// RequireIdentity rejects requests without a bearer token and user id, and
// stores the extracted identity in the request context for downstream use
// (the backend client forwards the token on every call).
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromRequest(r)
		if !ok {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "UNAUTHORIZED",
					Message: "bearer token and X-User-ID header are required",
				},
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), id)))
	})
}
