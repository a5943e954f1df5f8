// Package relayclient provides the HTTP client the operator side uses to
// request sessions from the relay.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xiaot623/embeddemo/domain"
)

const generateSessionPath = "/api/v1/embed/generate-session"

// UpstreamError is a non-2xx response passed through the relay. Its
// message is the raw response body.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("session request failed with status %d", e.StatusCode)
	}
	return e.Body
}

// ErrMissingSessionID is returned when a 2xx response carries no session id.
var ErrMissingSessionID = errors.New("response did not include a sessionId")

// Client is an HTTP client for the session relay.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new relay client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateSession asks the relay for a new signed session.
func (c *Client) GenerateSession(ctx context.Context, req *domain.GenerateSessionRequest) (*domain.Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generateSessionPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result domain.GenerateSessionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if result.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	return &domain.Session{SessionID: result.SessionID}, nil
}
