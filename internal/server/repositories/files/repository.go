package files

import (
	"context"

	"github.com/cryptvault-io/cryptvault/internal/server/models"
)

// Repository is the file metadata store. Ownership checks are enforced by
// the custody service, which looks the record up and masks mismatches; the
// repository itself is keyed by record id.
type Repository interface {
	Create(ctx context.Context, file *models.FileRecord) (*models.FileRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error)
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
	Delete(ctx context.Context, id string) error
}
