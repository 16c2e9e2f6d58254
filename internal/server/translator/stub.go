package translator

import (
	"context"
	"strings"
	"time"
)

// StubTranslatorConfig configures the offline translator.
type StubTranslatorConfig struct {
	// ProcessingDelay simulates translation time.
	ProcessingDelay time.Duration
	// Dictionary maps lower-cased source text to its translation per target language.
	// Unknown text becomes "[target] " + text.
	Dictionary map[string]map[string]string // [targetLang][sourceText]translatedText
}

// DefaultStubTranslatorConfig returns a small phrase book.
func DefaultStubTranslatorConfig() *StubTranslatorConfig {
	return &StubTranslatorConfig{
		Dictionary: map[string]map[string]string{
			"fr": {
				"hello":      "bonjour",
				"thank you":  "merci",
				"good night": "bonne nuit",
			},
			"es": {
				"hello":      "hola",
				"thank you":  "gracias",
				"good night": "buenas noches",
			},
			"de": {
				"hello":      "hallo",
				"thank you":  "danke",
				"good night": "gute Nacht",
			},
			"ur": {
				"hello":     "ہیلو",
				"thank you": "شکریہ",
			},
			"en": {
				"bonjour":  "hello",
				"hola":     "hello",
				"shukriya": "thank you",
				"merci":    "thank you",
			},
		},
	}
}

// StubTranslator is the offline backend. It never fails.
type StubTranslator struct {
	config *StubTranslatorConfig
}

// NewStubTranslator creates a stub translator; nil selects the default config.
func NewStubTranslator(config *StubTranslatorConfig) *StubTranslator {
	if config == nil {
		config = DefaultStubTranslatorConfig()
	}
	return &StubTranslator{config: config}
}

func (s *StubTranslator) Translate(ctx context.Context, text string, source, target string) (string, error) {
	if s.config.ProcessingDelay > 0 {
		select {
		case <-time.After(s.config.ProcessingDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if dict, ok := s.config.Dictionary[target]; ok {
		if translated, ok := dict[strings.ToLower(strings.TrimSpace(text))]; ok {
			return translated, nil
		}
	}
	return "[" + target + "] " + text, nil
}

func (s *StubTranslator) Health() HealthStatus {
	return HealthStatus{Healthy: true, Message: "offline translator ready"}
}
