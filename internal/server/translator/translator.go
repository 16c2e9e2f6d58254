// Package translator holds the Translator contract and its two backends:
// a LibreTranslate HTTP client and an offline dictionary translator.
package translator

import "context"

// Translator converts text between languages. source may be "auto" when the
// backend supports detection. Failures wrap common.ErrTranslation.
type Translator interface {
	Translate(ctx context.Context, text string, source, target string) (string, error)
}

// HealthStatus represents the health of a backend.
type HealthStatus struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}
