package repomanager

import (
	"context"
	"database/sql"

	"github.com/cryptvault-io/cryptvault/internal/dbx"
	"github.com/cryptvault-io/cryptvault/internal/server/repositories/files"
	"github.com/cryptvault-io/cryptvault/internal/server/repositories/vaults"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run repository calls either directly on *sql.DB or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Vaults(db dbx.DBTX) vaults.Repository
	Files(db dbx.DBTX) files.Repository
}
