package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSink ships feedback records to a remote learning service
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink creates a sink posting to the given endpoint. Returns nil
// when no URL is configured so callers can pass the result straight to
// NewRecorder.
func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	if url == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type sinkResponse struct {
	InteractionID string `json:"interaction_id"`
}

// Record posts one interaction and returns the sink's interaction ID.
func (s *HTTPSink) Record(ctx context.Context, in Interaction) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshal interaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sink request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sink rejected feedback: %s - %s", resp.Status, string(respBody))
	}

	var parsed sinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode sink response: %w", err)
	}

	return parsed.InteractionID, nil
}
