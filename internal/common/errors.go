// Package common defines the sentinel errors shared across the CryptVault
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (

	// repository-level errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("vault already exists")

	// identity-layer errors
	ErrAuthenticationFailed = errors.New("there is no such vault")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrUnknownSubject       = errors.New("vault no longer exists")

	// validation / upload policy errors
	ErrValidation      = errors.New("all fields are required")
	ErrNoFileProvided  = errors.New("no file provided")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrPayloadTooLarge = errors.New("file too large")

	// adapter-layer errors, transient from the caller's point of view
	ErrUploadFailed   = errors.New("file upload failed")
	ErrDeletionFailed = errors.New("error deleting file")

	// store-layer errors, fatal to the request but not the process
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrInternal = errors.New("internal error")
)
