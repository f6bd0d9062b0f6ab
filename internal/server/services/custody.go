package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/cryptvault-io/cryptvault/internal/server/blob"
	"github.com/cryptvault-io/cryptvault/internal/server/config"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
	"github.com/cryptvault-io/cryptvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// maxDownloadURLTTL bounds the exposure of a leaked download URL regardless
// of configuration.
const maxDownloadURLTTL = 10 * time.Minute

// CustodyService implements the four file operations of a vault: list,
// upload, delete, and retrieve. Every operation takes the owner id of an
// already-resolved vault account.
type CustodyService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	blobs          blob.Store
	maxUploadBytes int64
	allowedTypes   map[string]struct{}
	downloadTTL    time.Duration
	adapterTimeout time.Duration
}

// NewCustodyService constructs a CustodyService. The configured download TTL
// is clamped to maxDownloadURLTTL.
func NewCustodyService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, cfg *config.Config) *CustodyService {
	var allowed map[string]struct{}
	if len(cfg.AllowedContentTypes) > 0 {
		allowed = make(map[string]struct{}, len(cfg.AllowedContentTypes))
		for _, t := range cfg.AllowedContentTypes {
			allowed[t] = struct{}{}
		}
	}

	ttl := cfg.DownloadURLTTL
	if ttl <= 0 || ttl > maxDownloadURLTTL {
		ttl = maxDownloadURLTTL
	}

	return &CustodyService{
		db:             db,
		repomanager:    m,
		blobs:          blobs,
		maxUploadBytes: cfg.MaxUploadBytes,
		allowedTypes:   allowed,
		downloadTTL:    ttl,
		adapterTimeout: cfg.AdapterTimeout,
	}
}

// makeStorageKey mints an object-storage key under the owner's namespace.
// The key never contains client input, so one vault's namespace cannot be
// derived from or collide with another's.
func makeStorageKey(ownerID string) string {
	return fmt.Sprintf("vaults/%s/%s", ownerID, uuid.New())
}

func (s *CustodyService) withAdapterTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.adapterTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.adapterTimeout)
}

// List returns all file records owned by ownerID, newest first.
func (s *CustodyService) List(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	result, err := s.repomanager.Files(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.ErrStoreUnavailable
	}
	return result, nil
}

// Upload streams body into the owner's blob namespace and, only after the
// store confirms durable storage, creates the file record. An adapter
// failure yields ErrUploadFailed and no metadata row.
func (s *CustodyService) Upload(ctx context.Context, ownerID, displayName, contentType string, sizeBytes int64, body io.Reader) (*models.FileRecord, error) {
	if body == nil || sizeBytes == 0 {
		return nil, common.ErrNoFileProvided
	}
	if s.maxUploadBytes > 0 && sizeBytes > s.maxUploadBytes {
		return nil, common.ErrPayloadTooLarge
	}
	if s.allowedTypes != nil {
		if _, ok := s.allowedTypes[contentType]; !ok {
			return nil, common.ErrUnsupportedType
		}
	}

	key := makeStorageKey(ownerID)

	putCtx, cancel := s.withAdapterTimeout(ctx)
	defer cancel()
	if err := s.blobs.Put(putCtx, key, body, contentType, sizeBytes); err != nil {
		return nil, common.ErrUploadFailed
	}

	rec, err := s.repomanager.Files(s.db).Create(ctx, &models.FileRecord{
		OwnerID:     ownerID,
		DisplayName: displayName,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
	})
	if err != nil {
		// The blob is orphaned here; a storage sweep can reclaim it. The
		// reverse (metadata without a blob) is never created.
		return nil, common.ErrStoreUnavailable
	}

	return rec, nil
}

// Delete removes the blob and then the file record. Absence and ownership
// mismatch both yield ErrNotFound so the response does not confirm that
// another vault's file exists. An adapter failure yields ErrDeletionFailed
// and keeps the record, so metadata never claims a blob is gone while it is
// still stored; the caller may retry.
func (s *CustodyService) Delete(ctx context.Context, ownerID, fileID string) error {
	repo := s.repomanager.Files(s.db)

	rec, err := repo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrStoreUnavailable
	}
	if rec.OwnerID != ownerID {
		return common.ErrNotFound
	}

	delCtx, cancel := s.withAdapterTimeout(ctx)
	defer cancel()
	if err := s.blobs.Delete(delCtx, rec.StorageKey); err != nil {
		return common.ErrDeletionFailed
	}

	if err := repo.Delete(ctx, fileID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// lost a race with a concurrent delete of the same record
			return common.ErrNotFound
		}
		return common.ErrStoreUnavailable
	}

	return nil
}

// Retrieve returns a signed, expiring download URL for the file plus the
// record itself. The same ownership masking as Delete applies.
func (s *CustodyService) Retrieve(ctx context.Context, ownerID, fileID string) (string, *models.FileRecord, error) {
	rec, err := s.repomanager.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrNotFound
		}
		return "", nil, common.ErrStoreUnavailable
	}
	if rec.OwnerID != ownerID {
		return "", nil, common.ErrNotFound
	}

	signCtx, cancel := s.withAdapterTimeout(ctx)
	defer cancel()
	url, err := s.blobs.SignedGetURL(signCtx, rec.StorageKey, s.downloadTTL)
	if err != nil {
		return "", nil, fmt.Errorf("error signing download url: %w", err)
	}

	return url, rec, nil
}
