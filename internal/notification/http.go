package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const apiKeyHeader = "X-API-Key"

type httpSender struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPSender posts messages as JSON to url. apiKey is optional.
func NewHTTPSender(url, apiKey string, client *http.Client) Sender {
	if client == nil {
		client = &http.Client{}
	}
	return &httpSender{url: url, apiKey: apiKey, client: client}
}

func (s *httpSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notification: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notification: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set(apiKeyHeader, s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification: service returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	return nil
}
