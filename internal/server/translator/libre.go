package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/transkeeper/internal/common"
)

// LibreClient calls a LibreTranslate compatible /translate endpoint.
type LibreClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLibreClient returns a client for baseURL. apiKey may be empty for
// self-hosted instances. Deadlines come from the caller's context.
func NewLibreClient(baseURL, apiKey string, httpClient *http.Client) *LibreClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LibreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

func (c *LibreClient) Translate(ctx context.Context, text string, source, target string) (string, error) {
	body, err := json.Marshal(libreRequest{Q: text, Source: source, Target: target, Format: "text", APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", common.ErrTranslation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTranslation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// keep the context error reachable for timeout detection
		return "", fmt.Errorf("%w: %w", common.ErrTranslation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", common.ErrTranslation, err)
	}

	var out libreResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: status %d: bad response body", common.ErrTranslation, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("%w: status %d: %s", common.ErrTranslation, resp.StatusCode, msg)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", common.ErrTranslation, out.Error)
	}

	return out.TranslatedText, nil
}
