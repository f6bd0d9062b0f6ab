// Package vaults implements the vault credential store over PostgreSQL.
package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/cryptvault-io/cryptvault/internal/dbx"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new vault account. A duplicate name maps to
// common.ErrAlreadyExists; name matching is case-sensitive exact.
func (r *PostgresRepository) Create(ctx context.Context, vault *models.VaultAccount) (*models.VaultAccount, error) {

	query :=
		`INSERT INTO vaults (name, password_hash)
         VALUES ($1, $2)
         RETURNING id, created_at
         `

	err := r.db.QueryRowContext(ctx, query,
		vault.Name, vault.CredentialHash).Scan(&vault.ID, &vault.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}

// GetByName returns the vault account with the given name, or
// common.ErrNotFound.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.VaultAccount, error) {
	query :=
		`SELECT id, name, password_hash, created_at FROM vaults
         WHERE name = $1
         `

	vault := &models.VaultAccount{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&vault.ID, &vault.Name, &vault.CredentialHash, &vault.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}

// GetByID returns the vault account with the given id, or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.VaultAccount, error) {
	query :=
		`SELECT id, name, password_hash, created_at FROM vaults
         WHERE id = $1
         `

	vault := &models.VaultAccount{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&vault.ID, &vault.Name, &vault.CredentialHash, &vault.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vault, nil
}
