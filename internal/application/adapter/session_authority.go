package adapter

import "context"

// SessionCreateInput carries the parameters for minting a session token.
type SessionCreateInput struct {
	SessionID     string
	Fingerprint   string
	SecurityScore int
	UserAgent     string
}

// SessionValidateInput carries the parameters for validating a session.
type SessionValidateInput struct {
	SessionID   string
	Token       string
	Fingerprint string
	UserAgent   string
}

// SessionValidateResponse is the authority's validation answer.
type SessionValidateResponse struct {
	Valid         bool
	Reason        string
	SecurityLevel string
}

// SessionAuthority mints, validates, and revokes signed session tokens.
// It is the actual security boundary; the local validation record only
// detects client-side tampering.
type SessionAuthority interface {
	Create(ctx context.Context, input SessionCreateInput) (token string, err error)
	Validate(ctx context.Context, input SessionValidateInput) (*SessionValidateResponse, error)
	Revoke(ctx context.Context, sessionID string) error
}
