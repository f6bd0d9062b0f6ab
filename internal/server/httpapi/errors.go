package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cryptvault-io/cryptvault/internal/common"
)

// messageResponse is the uniform failure body: a machine-mappable status
// plus a human string.
type messageResponse struct {
	Message string `json:"message"`
}

// statusForError maps the domain error taxonomy onto HTTP status codes.
// Authentication and ownership failures stay deliberately vague.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrAuthenticationFailed),
		errors.Is(err, common.ErrNoFileProvided),
		errors.Is(err, common.ErrUnsupportedType),
		errors.Is(err, common.ErrPayloadTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrUnknownSubject):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !knownInternal(err) {
		// never leak unstructured failure details to the client
		msg = common.ErrInternal.Error()
	}
	writeJSON(w, status, messageResponse{Message: msg})
}

func knownInternal(err error) bool {
	return errors.Is(err, common.ErrUploadFailed) ||
		errors.Is(err, common.ErrDeletionFailed) ||
		errors.Is(err, common.ErrStoreUnavailable)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
