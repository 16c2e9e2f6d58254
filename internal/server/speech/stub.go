package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"time"
)

// StubSynthesizerConfig configures the stub synthesizer behavior.
type StubSynthesizerConfig struct {
	// ProcessingDelay simulates TTS processing time.
	ProcessingDelay time.Duration
	// SampleRate of the generated WAV audio.
	SampleRate int
	// Languages lists the accepted language codes. Empty accepts everything.
	Languages []string
}

// DefaultStubSynthesizerConfig returns sensible defaults for testing.
func DefaultStubSynthesizerConfig() *StubSynthesizerConfig {
	return &StubSynthesizerConfig{
		SampleRate: 16000,
	}
}

// StubSynthesizer produces deterministic silent PCM16 mono WAV clips whose
// length grows with the text.
type StubSynthesizer struct {
	config *StubSynthesizerConfig
}

func NewStubSynthesizer(config *StubSynthesizerConfig) *StubSynthesizer {
	if config == nil {
		config = DefaultStubSynthesizerConfig()
	}
	if config.SampleRate <= 0 {
		config.SampleRate = 16000
	}
	return &StubSynthesizer{config: config}
}

func (s *StubSynthesizer) supports(lang string) bool {
	if len(s.config.Languages) == 0 {
		return true
	}
	for _, l := range s.config.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func (s *StubSynthesizer) Synthesize(ctx context.Context, text string, lang string) (*Audio, error) {
	if s.config.ProcessingDelay > 0 {
		select {
		case <-time.After(s.config.ProcessingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if !s.supports(lang) {
		return nil, fmt.Errorf("language %q is not supported", lang)
	}

	// rough speaking rate: 5 characters per 400ms
	words := len(text) / 5
	if words < 1 {
		words = 1
	}
	duration := time.Duration(words) * 400 * time.Millisecond
	samples := int(duration.Seconds() * float64(s.config.SampleRate))

	return &Audio{
		Data:   EncodeWAV(make([]int16, samples), s.config.SampleRate),
		Format: FormatWAV,
		Lang:   lang,
	}, nil
}

func (s *StubSynthesizer) Health() HealthStatus {
	return HealthStatus{Healthy: true, Message: "stub synthesizer ready"}
}

// EncodeWAV wraps mono 16-bit samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * 2
	blockAlign := channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// StubRecognizerConfig configures the stub recognizer behavior.
type StubRecognizerConfig struct {
	// ProcessingDelay simulates STT processing time.
	ProcessingDelay time.Duration
	// Transcript is returned for every clip. Empty simulates silence.
	Transcript string
}

// DefaultStubRecognizerConfig returns sensible defaults for testing.
func DefaultStubRecognizerConfig() *StubRecognizerConfig {
	return &StubRecognizerConfig{
		Transcript: "hello",
	}
}

// StubRecognizer returns a fixed transcript.
type StubRecognizer struct {
	config *StubRecognizerConfig
}

func NewStubRecognizer(config *StubRecognizerConfig) *StubRecognizer {
	if config == nil {
		config = DefaultStubRecognizerConfig()
	}
	return &StubRecognizer{config: config}
}

func (s *StubRecognizer) Transcribe(ctx context.Context, audio *Audio) (string, error) {
	if s.config.ProcessingDelay > 0 {
		select {
		case <-time.After(s.config.ProcessingDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.config.Transcript, nil
}

func (s *StubRecognizer) Health() HealthStatus {
	return HealthStatus{Healthy: true, Message: "stub recognizer ready"}
}
