package adapter

import (
	"context"
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// RateLimitAuthorityResponse is the remote authority's answer to a check.
type RateLimitAuthorityResponse struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Reason    string
	Attempts  int
}

// RateLimitAuthority is the remote source of truth for rate limit decisions.
// A returned error means the authority could not produce a decision; the
// limiter resolves that to denial, never to a grant.
type RateLimitAuthority interface {
	Check(ctx context.Context, identifier string, action entity.RateLimitAction, policy entity.RateLimitPolicy) (*RateLimitAuthorityResponse, error)

	// ReportSuspicious asks the authority to temporarily tighten the limit
	// for an identifier. It is a push and does not deny the current request.
	ReportSuspicious(ctx context.Context, identifier, reason string) error
}
