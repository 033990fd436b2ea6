package middleware

import (
	"net/http"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/auth"
)

const (
	// UserIDHeader identifies the caller when token auth is disabled.
	UserIDHeader = "X-User-ID"
	// UserRoleHeader carries the caller role alongside UserIDHeader when the
	// gateway is trusted to set it.
	UserRoleHeader = "X-User-Role"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware resolves the caller from a bearer token and stores it with
// domain.ContextWithUser.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := domain.ContextWithUser(r.Context(), claims.User())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HeaderIdentity trusts an upstream gateway to set UserIDHeader. It is
// installed instead of AuthMiddleware when auth is disabled. UserRoleHeader
// is honoured only when trustRole is set; otherwise every caller is an
// investor.
func HeaderIdentity(trustRole bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(UserIDHeader)
			if userID == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing "+UserIDHeader+" header")
				return
			}

			role := domain.RoleInvestor
			if trustRole {
				if claimed := domain.Role(r.Header.Get(UserRoleHeader)); claimed.IsValid() {
					role = claimed
				}
			}

			ctx := domain.ContextWithUser(r.Context(), &domain.User{ID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose role differs from role. Admins pass
// every check.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := domain.UserFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if user.Role != role && user.Role != domain.RoleAdmin {
				writeJSONError(w, http.StatusForbidden, domain.ErrInsufficientRole.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
