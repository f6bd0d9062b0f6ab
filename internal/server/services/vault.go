// Package services contains the server-side business logic. This file
// implements VaultService: registration, login, and resolving a session
// token back to the acting vault account.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/cryptvault-io/cryptvault/internal/dbx"
	"github.com/cryptvault-io/cryptvault/internal/server/auth"
	"github.com/cryptvault-io/cryptvault/internal/server/config"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
	"github.com/cryptvault-io/cryptvault/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// VaultService provides identity operations:
//   - Register: create a vault and mint its first session token
//   - Login: verify credentials and mint a token
//   - Resolve: recover the acting vault account from a presented token
type VaultService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

// NewVaultService constructs a VaultService using repositories and server
// config.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *VaultService {
	return &VaultService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// Register creates a new vault account and returns it together with a fresh
// session token. An empty name or password yields ErrValidation; a taken
// name yields ErrAlreadyExists. No token is issued on any failure.
func (s *VaultService) Register(ctx context.Context, name, password string) (*models.VaultAccount, string, error) {
	if name == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	var vault *models.VaultAccount
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Vaults(tx)

		// Pre-flight lookup gives a clean error before the insert; the
		// unique constraint still closes the racing-registration window.
		if _, err := repo.GetByName(ctx, name); err == nil {
			return common.ErrAlreadyExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return common.ErrStoreUnavailable
		}

		created, err := repo.Create(ctx, &models.VaultAccount{Name: name, CredentialHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return common.ErrAlreadyExists
			}
			return common.ErrStoreUnavailable
		}
		vault = created
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(vault.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return vault, token, nil
}

// Login verifies the name/password pair and mints a session token. An
// unknown name and a wrong password both yield the same
// ErrAuthenticationFailed, so the response does not reveal which one
// occurred.
func (s *VaultService) Login(ctx context.Context, name, password string) (*models.VaultAccount, string, error) {
	if name == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	repo := s.repomanager.Vaults(s.db)
	vault, err := repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrAuthenticationFailed
		}
		return nil, "", common.ErrStoreUnavailable
	}

	if bcrypt.CompareHashAndPassword(vault.CredentialHash, []byte(password)) != nil {
		return nil, "", common.ErrAuthenticationFailed
	}

	token, err := auth.GenerateToken(vault.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return vault, token, nil
}

// Resolve verifies the presented token and loads the acting vault account.
// It is the single authorization gate: every custody operation takes its
// owner id from the account returned here, never from client input.
// A valid token whose account record is gone yields ErrUnknownSubject.
func (s *VaultService) Resolve(ctx context.Context, token string) (*models.VaultAccount, error) {
	vaultID, err := auth.GetVaultIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Vaults(s.db)
	vault, err := repo.GetByID(ctx, vaultID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnknownSubject
		}
		return nil, common.ErrStoreUnavailable
	}

	return vault, nil
}
