package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cryptvault-io/cryptvault/internal/common"
	"github.com/cryptvault-io/cryptvault/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is the slack added on top of the upload size limit to
// account for multipart boundaries and part headers.
const multipartOverhead = 10 << 10

// CustodyService defines the file operations required by the HTTP handlers.
// The owner id always comes from the resolved vault in the request context.
type CustodyService interface {
	List(ctx context.Context, ownerID string) ([]*models.FileRecord, error)
	Upload(ctx context.Context, ownerID, displayName, contentType string, sizeBytes int64, body io.Reader) (*models.FileRecord, error)
	Delete(ctx context.Context, ownerID, fileID string) error
	Retrieve(ctx context.Context, ownerID, fileID string) (string, *models.FileRecord, error)
}

// VaultHandler handles the authenticated vault file routes.
type VaultHandler struct {
	Service CustodyService
	// MaxUploadBytes bounds the request body before multipart parsing;
	// 0 disables the pre-parse check.
	MaxUploadBytes int64
}

// fileDescriptor is the wire shape of one file record.
type fileDescriptor struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
}

func toDescriptor(rec *models.FileRecord) fileDescriptor {
	return fileDescriptor{
		ID:         rec.ID,
		Filename:   rec.DisplayName,
		Type:       rec.ContentType,
		Size:       rec.SizeBytes,
		UploadDate: rec.CreatedAt,
	}
}

// List handles GET /users/vault/files.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	vault, ok := VaultFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not authorized")
		return
	}

	records, err := h.Service.List(r.Context(), vault.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	descriptors := make([]fileDescriptor, 0, len(records))
	for _, rec := range records {
		descriptors = append(descriptors, toDescriptor(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(descriptors),
		"files":   descriptors,
	})
}

// Upload handles POST /users/vault/upload (multipart, field "file").
func (h *VaultHandler) Upload(w http.ResponseWriter, r *http.Request) {
	vault, ok := VaultFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not authorized")
		return
	}

	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+multipartOverhead)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, common.ErrPayloadTooLarge)
			return
		}
		writeError(w, common.ErrNoFileProvided)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	rec, err := h.Service.Upload(r.Context(), vault.ID, header.Filename, contentType, header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "File uploaded successfully",
		"file":    toDescriptor(rec),
	})
}

// Delete handles DELETE /users/vault/files/{fileID}.
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vault, ok := VaultFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not authorized")
		return
	}

	if err := h.Service.Delete(r.Context(), vault.ID, chi.URLParam(r, "fileID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "File deleted successfully",
	})
}

// Download handles GET /users/vault/download/{fileID} by redirecting to a
// signed, expiring URL. The permanent storage key is never exposed.
func (h *VaultHandler) Download(w http.ResponseWriter, r *http.Request) {
	vault, ok := VaultFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not authorized")
		return
	}

	url, rec, err := h.Service.Retrieve(r.Context(), vault.ID, chi.URLParam(r, "fileID"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.DisplayName))
	http.Redirect(w, r, url, http.StatusFound)
}
