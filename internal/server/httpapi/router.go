package httpapi

import (
	"net/http"

	"github.com/cryptvault-io/cryptvault/internal/logging"
	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the HTTP handler serving the CryptVault API.
//
// Routes:
//
//	POST   /auth/users/register          → authHandler.Register
//	POST   /auth/users/login             → authHandler.Login
//	GET    /users/vault/files            → vaultHandler.List     (bearer)
//	POST   /users/vault/upload           → vaultHandler.Upload   (bearer)
//	DELETE /users/vault/files/{fileID}   → vaultHandler.Delete   (bearer)
//	GET    /users/vault/download/{fileID}→ vaultHandler.Download (bearer)
func NewRouter(
	authHandler *AuthHandler,
	vaultHandler *VaultHandler,
	resolver IdentityResolver,
	logger logging.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(WithRequestLogging(logger))

	// Public endpoints
	r.Route("/auth/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected group: requires a valid bearer token
	r.Route("/users/vault", func(r chi.Router) {
		r.Use(BearerAuth(resolver))
		r.Get("/files", vaultHandler.List)
		r.Post("/upload", vaultHandler.Upload)
		r.Delete("/files/{fileID}", vaultHandler.Delete)
		r.Get("/download/{fileID}", vaultHandler.Download)
	})

	return r
}
