// Package models defines server-side data models persisted in the database.
package models

import "time"

// VaultAccount is a registered vault: a named, password-protected ownership
// boundary for a set of stored files.
type VaultAccount struct {
	// ID is the opaque identifier assigned by the store at creation.
	ID string
	// Name is the unique, human-chosen vault name (case-sensitive).
	Name string
	// CredentialHash is the salted bcrypt hash of the vault password.
	// It is never transmitted or logged.
	CredentialHash []byte
	CreatedAt      time.Time
}
