package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/transkeeper/internal/common"
)

// SynthesizerChain tries each engine in order. When all of them fail for the
// requested language it runs the engines once more with DefaultLanguage.
type SynthesizerChain struct {
	engines []Synthesizer
}

func NewSynthesizerChain(engines ...Synthesizer) *SynthesizerChain {
	return &SynthesizerChain{engines: engines}
}

// Synthesize returns the first non-empty clip. The error wraps common.ErrTTS
// and every engine error, including ctx.Err() when the deadline hit.
func (c *SynthesizerChain) Synthesize(ctx context.Context, text string, lang string) (*Audio, error) {
	if len(c.engines) == 0 {
		return nil, fmt.Errorf("%w: no engines configured", common.ErrTTS)
	}

	langs := []string{lang}
	if lang != DefaultLanguage {
		langs = append(langs, DefaultLanguage)
	}

	var errs []error
	for _, l := range langs {
		for i, e := range c.engines {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", common.ErrTTS, errors.Join(append(errs, err)...))
			}

			a, err := e.Synthesize(ctx, text, l)
			if err != nil {
				errs = append(errs, fmt.Errorf("engine %d (%s): %w", i, l, err))
				continue
			}
			if a == nil || len(a.Data) == 0 {
				errs = append(errs, fmt.Errorf("engine %d (%s): empty audio", i, l))
				continue
			}
			if a.Lang == "" {
				a.Lang = l
			}
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: %w", common.ErrTTS, errors.Join(errs...))
}

// RecognizerChain returns the first non-empty transcript from its engines.
type RecognizerChain struct {
	engines []Recognizer
}

func NewRecognizerChain(engines ...Recognizer) *RecognizerChain {
	return &RecognizerChain{engines: engines}
}

// Transcribe fails with common.ErrSTT when no engine produced text.
func (c *RecognizerChain) Transcribe(ctx context.Context, audio *Audio) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", fmt.Errorf("%w: empty audio", common.ErrSTT)
	}
	if len(c.engines) == 0 {
		return "", fmt.Errorf("%w: no engines configured", common.ErrSTT)
	}

	var errs []error
	for i, e := range c.engines {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", common.ErrSTT, errors.Join(append(errs, err)...))
		}

		text, err := e.Transcribe(ctx, audio)
		if err != nil {
			errs = append(errs, fmt.Errorf("engine %d: %w", i, err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("engine %d: empty transcript", i))
	}

	return "", fmt.Errorf("%w: %w", common.ErrSTT, errors.Join(errs...))
}
