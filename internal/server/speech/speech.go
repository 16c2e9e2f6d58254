// Package speech defines the text-to-speech and speech-to-text contracts,
// fallback chains over several engines, and the built-in engines.
package speech

import (
	"context"
	"mime"
	"strings"
)

// DefaultLanguage is the language the synthesizer chain retries with when
// every engine rejects the requested one.
const DefaultLanguage = "en"

const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// Audio is an encoded clip. Format is a file extension such as "mp3" or "wav".
// Lang is the language the clip was actually synthesized in.
type Audio struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
	Lang   string `json:"lang,omitempty"`
}

// MIMEType returns the content type for a.Format.
func (a *Audio) MIMEType() string {
	switch a.Format {
	case FormatMP3:
		return "audio/mpeg"
	case FormatWAV:
		return "audio/wav"
	}
	if t := mime.TypeByExtension("." + a.Format); t != "" {
		return t
	}
	return "application/octet-stream"
}

// FormatFromMIME maps a content type to an Audio format. Unknown types map to "bin".
func FormatFromMIME(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "bin"
	}
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return FormatMP3
	case "audio/wav", "audio/x-wav", "audio/wave":
		return FormatWAV
	}
	if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}

// Synthesizer turns text into audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, lang string) (*Audio, error)
}

// Recognizer turns audio into text. An empty transcript is not an error.
type Recognizer interface {
	Transcribe(ctx context.Context, audio *Audio) (string, error)
}

// HealthStatus represents the health of an engine.
type HealthStatus struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}
