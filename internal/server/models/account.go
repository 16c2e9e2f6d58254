// Package models holds the records persisted by the server repositories.
package models

import "time"

// Account is a stored identity. PasswordHash is an encoded argon2id hash,
// never the password itself.
type Account struct {
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
