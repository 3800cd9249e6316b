package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dbooster/trustd/internal/application/adapter"
)

// SessionAuthorityClient talks to the remote session authority over HTTP.
// Before trusting a remote valid answer it verifies the token signature
// locally with the shared secret, so a compromised transport cannot smuggle
// an unsigned token past validation.
type SessionAuthorityClient struct {
	baseURL     string
	apiKey      string
	tokenSecret []byte
	client      *http.Client
}

// NewSessionAuthorityClient creates a session authority client.
func NewSessionAuthorityClient(baseURL, apiKey, tokenSecret string, client *http.Client) *SessionAuthorityClient {
	return &SessionAuthorityClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		tokenSecret: []byte(tokenSecret),
		client:      client,
	}
}

type sessionCreateRequest struct {
	SessionID     string `json:"sessionId"`
	Fingerprint   string `json:"fingerprint"`
	SecurityScore int    `json:"securityScore"`
	UserAgent     string `json:"userAgent"`
}

type sessionCreateResponse struct {
	Token string `json:"token"`
}

// Create asks the authority to mint a signed session token bound to the
// session id, fingerprint, and security score.
func (c *SessionAuthorityClient) Create(ctx context.Context, input adapter.SessionCreateInput) (string, error) {
	payload := sessionCreateRequest{
		SessionID:     input.SessionID,
		Fingerprint:   input.Fingerprint,
		SecurityScore: input.SecurityScore,
		UserAgent:     input.UserAgent,
	}

	var decoded sessionCreateResponse
	if err := c.post(ctx, "/v1/sessions/create", payload, &decoded); err != nil {
		return "", err
	}
	if decoded.Token == "" {
		return "", fmt.Errorf("authority returned an empty token")
	}

	if err := c.verifyTokenSignature(decoded.Token); err != nil {
		return "", fmt.Errorf("minted token failed signature verification: %w", err)
	}

	return decoded.Token, nil
}

type sessionValidateRequest struct {
	SessionID   string `json:"sessionId"`
	Token       string `json:"token"`
	Fingerprint string `json:"fingerprint"`
	UserAgent   string `json:"userAgent"`
}

type sessionValidateResponse struct {
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"`
	SecurityLevel string `json:"securityLevel,omitempty"`
}

// Validate asks the authority whether the session is still good. A token
// whose signature does not verify locally is rejected without a round trip.
func (c *SessionAuthorityClient) Validate(ctx context.Context, input adapter.SessionValidateInput) (*adapter.SessionValidateResponse, error) {
	if err := c.verifyTokenSignature(input.Token); err != nil {
		return &adapter.SessionValidateResponse{
			Valid:  false,
			Reason: "Invalid token signature",
		}, nil
	}

	payload := sessionValidateRequest{
		SessionID:   input.SessionID,
		Token:       input.Token,
		Fingerprint: input.Fingerprint,
		UserAgent:   input.UserAgent,
	}

	var decoded sessionValidateResponse
	if err := c.post(ctx, "/v1/sessions/validate", payload, &decoded); err != nil {
		return nil, err
	}

	return &adapter.SessionValidateResponse{
		Valid:         decoded.Valid,
		Reason:        decoded.Reason,
		SecurityLevel: decoded.SecurityLevel,
	}, nil
}

type sessionRevokeRequest struct {
	SessionID string `json:"sessionId"`
}

// Revoke asks the authority to invalidate the session.
func (c *SessionAuthorityClient) Revoke(ctx context.Context, sessionID string) error {
	return c.post(ctx, "/v1/sessions/revoke", sessionRevokeRequest{SessionID: sessionID}, nil)
}

// verifyTokenSignature checks the HMAC signature and expiry of an
// authority-minted token.
func (c *SessionAuthorityClient) verifyTokenSignature(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.tokenSecret, nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// post sends a JSON request and decodes a JSON response when out is non-nil.
func (c *SessionAuthorityClient) post(ctx context.Context, path string, payload any, out any) error {
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
