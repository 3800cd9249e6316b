package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// RateLimitAuthorityClient talks to the remote rate-limit authority over
// HTTP. It implements adapter.RateLimitAuthority; any transport or decoding
// failure surfaces as an error, which the limiter resolves to denial.
type RateLimitAuthorityClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRateLimitAuthorityClient creates a rate-limit authority client.
func NewRateLimitAuthorityClient(baseURL, apiKey string, client *http.Client) *RateLimitAuthorityClient {
	return &RateLimitAuthorityClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

type rateLimitCheckRequest struct {
	Identifier string                 `json:"identifier"`
	Action     string                 `json:"action"`
	Policy     rateLimitPolicyPayload `json:"policy"`
}

type rateLimitPolicyPayload struct {
	MaxAttempts int   `json:"max_attempts"`
	WindowMs    int64 `json:"window_ms"`
	BlockMs     int64 `json:"block_ms"`
	Progressive bool  `json:"progressive"`
}

type rateLimitCheckResponse struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	ResetTime int64  `json:"resetTime"`
	Reason    string `json:"reason,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
}

// Check asks the authority for an authoritative decision.
func (c *RateLimitAuthorityClient) Check(ctx context.Context, identifier string, action entity.RateLimitAction, policy entity.RateLimitPolicy) (*adapter.RateLimitAuthorityResponse, error) {
	payload := rateLimitCheckRequest{
		Identifier: identifier,
		Action:     string(action),
		Policy: rateLimitPolicyPayload{
			MaxAttempts: policy.MaxAttempts,
			WindowMs:    policy.Window.Milliseconds(),
			BlockMs:     policy.BlockDuration.Milliseconds(),
			Progressive: policy.Progressive,
		},
	}

	var decoded rateLimitCheckResponse
	if err := c.post(ctx, "/v1/ratelimit/check", payload, &decoded); err != nil {
		return nil, err
	}

	return &adapter.RateLimitAuthorityResponse{
		Allowed:   decoded.Allowed,
		Remaining: decoded.Remaining,
		ResetAt:   time.UnixMilli(decoded.ResetTime),
		Reason:    decoded.Reason,
		Attempts:  decoded.Attempts,
	}, nil
}

type suspiciousActivityRequest struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// ReportSuspicious pushes a violation report so the authority can tighten
// the identifier's allowance for its escalation window.
func (c *RateLimitAuthorityClient) ReportSuspicious(ctx context.Context, identifier, reason string) error {
	payload := suspiciousActivityRequest{Identifier: identifier, Reason: reason}
	return c.post(ctx, "/v1/ratelimit/report", payload, nil)
}

// post sends a JSON request and decodes a JSON response when out is non-nil.
func (c *RateLimitAuthorityClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("authority request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authority returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode authority response: %w", err)
		}
	}
	return nil
}
