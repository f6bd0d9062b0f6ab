package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cryptvault-io/cryptvault/internal/logging"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const vaultKey ctxKey = "vault"

// IdentityResolver recovers the acting vault account from a bearer token.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.VaultAccount, error)
}

// BearerAuth enforces `Authorization: Bearer <token>` on the routes it
// wraps. On success the resolved vault account is stored in the request
// context; every failure is a 401 with a message naming which of the cases
// occurred (no token, invalid, expired, vault gone).
func BearerAuth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "not authorized, no token")
				return
			}

			vault, err := resolver.Resolve(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), vaultKey, vault)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VaultFromContext returns the vault account stashed by BearerAuth.
func VaultFromContext(ctx context.Context) (*models.VaultAccount, bool) {
	vault, ok := ctx.Value(vaultKey).(*models.VaultAccount)
	return vault, ok
}

// WithRequestLogging logs each request with its method, path, status, and
// duration.
func WithRequestLogging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
