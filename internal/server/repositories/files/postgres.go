// Package files implements the file metadata store over PostgreSQL.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/cryptvault-io/cryptvault/internal/dbx"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file record and returns it with the store-assigned id and
// creation time.
func (r *PostgresRepository) Create(ctx context.Context, file *models.FileRecord) (*models.FileRecord, error) {
	query := `
		INSERT INTO files (vault_id, display_name, storage_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.OwnerID, file.DisplayName, file.StorageKey, file.ContentType, file.SizeBytes).
		Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// ListByOwner returns all file records owned by ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	query := `
		SELECT id, vault_id, display_name, storage_key, content_type, size_bytes, created_at FROM files
		WHERE vault_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		var item models.FileRecord
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.DisplayName, &item.StorageKey, &item.ContentType, &item.SizeBytes, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the file record with the given id, or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	query := `
		SELECT id, vault_id, display_name, storage_key, content_type, size_bytes, created_at FROM files
		WHERE id = $1
	`
	result := &models.FileRecord{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&result.ID, &result.OwnerID, &result.DisplayName, &result.StorageKey, &result.ContentType, &result.SizeBytes, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Delete removes the file record with the given id. Zero affected rows map
// to common.ErrNotFound, which makes a concurrent second delete observe the
// record as already gone.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
