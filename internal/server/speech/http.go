package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxAudioSize = 32 << 20

// HTTPSynthesizer posts {"text","lang"} to a TTS endpoint and reads the
// audio body back. The response Content-Type decides the format.
type HTTPSynthesizer struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSynthesizer(url string, httpClient *http.Client) *HTTPSynthesizer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSynthesizer{url: url, httpClient: httpClient}
}

type synthesizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text string, lang string) (*Audio, error) {
	body, err := json.Marshal(synthesizeRequest{Text: text, Lang: lang})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tts status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioSize))
	if err != nil {
		return nil, err
	}

	return &Audio{
		Data:   data,
		Format: FormatFromMIME(resp.Header.Get("Content-Type")),
		Lang:   lang,
	}, nil
}

// HTTPRecognizer posts the raw clip to an STT endpoint and expects
// {"text": "..."} back.
type HTTPRecognizer struct {
	url        string
	httpClient *http.Client
}

func NewHTTPRecognizer(url string, httpClient *http.Client) *HTTPRecognizer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPRecognizer{url: url, httpClient: httpClient}
}

type transcribeResponse struct {
	Text string `json:"text"`
}

func (r *HTTPRecognizer) Transcribe(ctx context.Context, audio *Audio) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(audio.Data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", audio.MIMEType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("stt status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out transcribeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode stt response: %w", err)
	}
	return out.Text, nil
}
