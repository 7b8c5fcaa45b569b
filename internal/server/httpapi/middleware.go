package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/minhtran/taskkeeper/internal/common"
	"github.com/minhtran/taskkeeper/internal/server/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext returns the verified identity injected by Authenticate.
// The second result is false on routes that never passed through it.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}

// Authenticate verifies the bearer token on every request in the group and
// stores the resulting identity in the request context.
func Authenticate(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				respondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			identity, err := auth.ParseToken(token, secretKey)
			if err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					respondError(w, http.StatusUnauthorized, "token expired")
					return
				}
				respondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
