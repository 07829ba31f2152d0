// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/nagolos/internal/httputil"
)

// HTTPStressifier posts each unit to a stress service. The service accepts
// {"text", "symbol", "on_ambiguity"} and answers {"text"}.
type HTTPStressifier struct {
	Client     *http.Client
	URL        string
	Token      string
	MaxRetries int
	Options    Options
}

type stressRequest struct {
	Text        string `json:"text"`
	Symbol      string `json:"symbol,omitempty"`
	OnAmbiguity string `json:"on_ambiguity,omitempty"`
}

type stressResponse struct {
	Text *string `json:"text"`
}

// Transform sends text to the service. Blank units are returned without a
// request.
func (h *HTTPStressifier) Transform(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	body, err := json.Marshal(stressRequest{
		Text:        text,
		Symbol:      string(h.Options.Symbol),
		OnAmbiguity: string(h.Options.OnAmbiguity),
	})
	if err != nil {
		return "", fmt.Errorf("encoding stress request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, h.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("stress service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			return "", fmt.Errorf("stress service returned HTTP %d: %s", resp.StatusCode, msg)
		}
		return "", fmt.Errorf("stress service returned HTTP %d", resp.StatusCode)
	}

	var sr stressResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("parsing stress response: %w", err)
	}
	if sr.Text == nil {
		return "", fmt.Errorf("stress response has no text field")
	}
	return *sr.Text, nil
}
