package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteScanner delegates screening to an external moderation endpoint.
// The wire format mirrors Result: a JSON object mapping category names to
// matched snippets. Unknown categories in the response are dropped.
type RemoteScanner struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewRemoteScanner(endpoint, apiKey string, timeout time.Duration) *RemoteScanner {
	return &RemoteScanner{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type remoteRequest struct {
	Content string `json:"content"`
}

func (s *RemoteScanner) Scan(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(remoteRequest{Content: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation endpoint returned status %d", resp.StatusCode)
	}

	var raw map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("moderation response decode failed: %w", err)
	}

	result := emptyResult()
	for _, category := range Categories {
		if matches, ok := raw[string(category)]; ok && len(matches) > 0 {
			result.Findings[category] = matches
		}
	}
	return result, nil
}
