// Package common defines constants and sentinel errors shared by the server,
// the client and the storage layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrDuplicateUser = errors.New("user already exists")

	// Account store.
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProtected          = errors.New("account is protected")
	ErrForbidden          = errors.New("forbidden")

	// History store.
	ErrUnknownOwner = errors.New("unknown history owner")

	// Persistence is unavailable or unwritable.
	ErrStorage = errors.New("storage error")

	// External collaborators.
	ErrTranslation = errors.New("translation failed")
	ErrTTS         = errors.New("speech synthesis failed")
	ErrSTT         = errors.New("speech recognition failed")
	ErrTimeout     = errors.New("timeout")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token lifecycle.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
