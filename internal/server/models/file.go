package models

import "time"

// FileRecord describes one file held in a vault. The content itself lives in
// object storage under StorageKey; this row carries the metadata and the
// ownership binding.
type FileRecord struct {
	// ID is the opaque identifier assigned by the store.
	ID string
	// OwnerID is the owning vault's id, set once at creation.
	OwnerID string
	// DisplayName is the original filename as supplied by the uploader,
	// treated as opaque text.
	DisplayName string
	// StorageKey is the object-storage key of the blob. It is minted by the
	// upload path, never derived from client input, and not guessable from
	// ID or DisplayName.
	StorageKey string
	// ContentType and SizeBytes are as reported by the uploader.
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
