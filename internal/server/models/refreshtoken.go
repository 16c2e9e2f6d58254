package models

import "time"

// RefreshToken is a server-side session. Only the sha256 of the token is stored.
type RefreshToken struct {
	Username  string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}
