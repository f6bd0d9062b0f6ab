package vaults

import (
	"context"

	"github.com/cryptvault-io/cryptvault/internal/server/models"
)

// Repository is the credential store: the durable mapping from vault name to
// credential hash and vault id.
type Repository interface {
	Create(ctx context.Context, vault *models.VaultAccount) (*models.VaultAccount, error)
	GetByName(ctx context.Context, name string) (*models.VaultAccount, error)
	GetByID(ctx context.Context, id string) (*models.VaultAccount, error)
}
