package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/language"
	"github.com/dmitrijs2005/transkeeper/internal/logging"
	"github.com/dmitrijs2005/transkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/transkeeper/internal/server/models"
	"github.com/dmitrijs2005/transkeeper/internal/server/speech"
	"github.com/dmitrijs2005/transkeeper/internal/server/textlog"
	"github.com/dmitrijs2005/transkeeper/internal/server/translator"
)

const defaultCollaboratorTimeout = 10 * time.Second

// TranslateRequest is one translate action. Source and Target accept a
// code, a language name or "Name (code)". An empty Source means auto.
type TranslateRequest struct {
	Text    string
	Source  string
	Target  string
	Speak   bool
	Reverse bool
}

// TranslateResult carries the translation and everything that degraded
// without failing the action.
type TranslateResult struct {
	Output    string
	Source    string
	Target    string
	Reverse   string
	Audio     *speech.Audio
	AudioFile string
	Entry     *models.HistoryEntry
	Warnings  []string
}

// TranscribeResult is the outcome of transcribe-and-translate. Translation
// is nil when nothing was recognised or no target was given.
type TranscribeResult struct {
	Transcript  string
	Translation *TranslateResult
	Warnings    []string
}

// TranslationService runs the user-facing actions on top of the external
// collaborators. Collaborator failures other than the translator's own
// become warnings.
type TranslationService struct {
	translator  translator.Translator
	synthesizer speech.Synthesizer
	recognizer  speech.Recognizer
	history     *HistoryService
	textlog     *textlog.Writer
	logger      logging.Logger
	timeout     time.Duration
	now         func() time.Time
}

func NewTranslationService(
	t translator.Translator,
	synth speech.Synthesizer,
	recog speech.Recognizer,
	history *HistoryService,
	tl *textlog.Writer,
	timeout time.Duration,
	logger logging.Logger,
) *TranslationService {
	if timeout <= 0 {
		timeout = defaultCollaboratorTimeout
	}
	return &TranslationService{
		translator:  t,
		synthesizer: synth,
		recognizer:  recog,
		history:     history,
		textlog:     tl,
		logger:      logger.With("module", "translation"),
		timeout:     timeout,
		now:         time.Now,
	}
}

// AudioFileName returns translation_YYYYmmdd_HHMMSS.<format>.
func AudioFileName(t time.Time, format string) string {
	if format == "" {
		format = "bin"
	}
	return fmt.Sprintf("translation_%s.%s", t.Format("20060102_150405"), format)
}

// call runs fn under the collaborator timeout and records its metrics.
// Hitting the deadline yields common.ErrTimeout.
func (s *TranslationService) call(ctx context.Context, collaborator string, fn func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(callCtx)
	metrics.CollaboratorDurationSeconds.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}

	metrics.CollaboratorFailuresTotal.WithLabelValues(collaborator).Inc()
	if ctx.Err() == nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded)) {
		return fmt.Errorf("%w: %s did not answer within %s: %w", common.ErrTimeout, collaborator, s.timeout, err)
	}
	return err
}

func (s *TranslationService) translate(ctx context.Context, text, source, target string) (string, error) {
	var out string
	err := s.call(ctx, metrics.Translator, func(ctx context.Context) error {
		var err error
		out, err = s.translator.Translate(ctx, text, source, target)
		return err
	})
	if err != nil && !errors.Is(err, common.ErrTranslation) {
		err = fmt.Errorf("%w: %w", common.ErrTranslation, err)
	}
	return out, err
}

func (s *TranslationService) synthesize(ctx context.Context, text, lang string) (*speech.Audio, error) {
	var a *speech.Audio
	err := s.call(ctx, metrics.TTS, func(ctx context.Context) error {
		var err error
		a, err = s.synthesizer.Synthesize(ctx, text, lang)
		return err
	})
	if err != nil && !errors.Is(err, common.ErrTTS) {
		err = fmt.Errorf("%w: %w", common.ErrTTS, err)
	}
	return a, err
}

// Translate validates the request, translates it and records it in the
// history of owner. Speech, reverse translation and history failures are
// reported as warnings next to the translation.
func (s *TranslationService) Translate(ctx context.Context, owner string, req TranslateRequest) (*TranslateResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: nothing to translate", common.ErrInvalidInput)
	}

	target, _ := language.Resolve(req.Target)
	if target == "" || target == language.Auto {
		return nil, fmt.Errorf("%w: target language is required", common.ErrInvalidInput)
	}

	source := language.Auto
	if strings.TrimSpace(req.Source) != "" {
		source, _ = language.Resolve(req.Source)
	}
	if source == language.Auto {
		source = language.Detect(text)
	}

	out, err := s.translate(ctx, text, source, target)
	if err != nil {
		result := "error"
		if errors.Is(err, common.ErrTimeout) {
			result = "timeout"
		}
		metrics.TranslationsTotal.WithLabelValues(result).Inc()
		s.logger.Warn(ctx, "translation failed", "owner", owner, "source", source, "target", target, "error", err)
		return nil, err
	}
	metrics.TranslationsTotal.WithLabelValues("ok").Inc()

	res := &TranslateResult{Output: out, Source: source, Target: target}

	entry, err := models.NewHistoryEntry(owner, source, target, text, out, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.history.Append(ctx, entry); err != nil {
		s.warn(ctx, res, "history", fmt.Sprintf("translation was not saved to history: %v", err))
	} else {
		res.Entry = entry
		if err := s.textlog.Append(entry); err != nil {
			s.logger.Warn(ctx, "text log append failed", "error", err)
		}
	}

	if req.Reverse && target != language.Default {
		back, err := s.translate(ctx, out, target, language.Default)
		if err != nil {
			s.warn(ctx, res, "reverse", fmt.Sprintf("reverse translation unavailable: %v", err))
		} else {
			res.Reverse = back
		}
	}

	if req.Speak {
		a, err := s.synthesize(ctx, out, target)
		if err != nil {
			s.warn(ctx, res, "tts", fmt.Sprintf("audio unavailable: %v", err))
		} else {
			res.Audio = a
			res.AudioFile = AudioFileName(entry.Time, a.Format)
			if a.Lang != "" && a.Lang != target {
				s.warn(ctx, res, "tts", fmt.Sprintf("no voice for %s, audio is in %s", language.Display(target), language.Display(a.Lang)))
			}
		}
	}

	return res, nil
}

// Transcribe recognises speech in audio and, when target is set,
// translates the transcript. A clip nobody could recognise is not an
// error: the result is empty and carries a warning.
func (s *TranslationService) Transcribe(ctx context.Context, owner string, audio *speech.Audio, target string, speak bool) (*TranscribeResult, error) {
	if audio == nil || len(audio.Data) == 0 {
		return nil, fmt.Errorf("%w: empty audio", common.ErrInvalidInput)
	}

	res := &TranscribeResult{}

	var transcript string
	err := s.call(ctx, metrics.STT, func(ctx context.Context) error {
		var err error
		transcript, err = s.recognizer.Transcribe(ctx, audio)
		return err
	})
	transcript = strings.TrimSpace(transcript)
	if err != nil || transcript == "" {
		msg := "no speech was recognised"
		if err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		metrics.WarningsTotal.WithLabelValues("stt").Inc()
		s.logger.Warn(ctx, "transcription degraded", "owner", owner, "error", err)
		res.Warnings = append(res.Warnings, msg)
		return res, nil
	}
	res.Transcript = transcript

	if strings.TrimSpace(target) == "" {
		return res, nil
	}

	tr, err := s.Translate(ctx, owner, TranslateRequest{Text: transcript, Target: target, Speak: speak})
	if err != nil {
		return nil, err
	}
	res.Translation = tr
	return res, nil
}

// Speak synthesizes text. Unlike Translate, a synthesis failure fails the call.
func (s *TranslationService) Speak(ctx context.Context, text, lang string) (*speech.Audio, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", fmt.Errorf("%w: nothing to speak", common.ErrInvalidInput)
	}

	code, _ := language.Resolve(lang)
	if code == "" || code == language.Auto {
		code = language.Detect(text)
	}

	a, err := s.synthesize(ctx, text, code)
	if err != nil {
		return nil, "", err
	}
	return a, AudioFileName(s.now(), a.Format), nil
}

func (s *TranslationService) warn(ctx context.Context, res *TranslateResult, kind, msg string) {
	metrics.WarningsTotal.WithLabelValues(kind).Inc()
	s.logger.Warn(ctx, msg, "kind", kind)
	res.Warnings = append(res.Warnings, msg)
}
