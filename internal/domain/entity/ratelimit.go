package entity

import "time"

// RateLimitAction identifies the operation class a rate limit applies to.
type RateLimitAction string

const (
	ActionLogin       RateLimitAction = "login"
	ActionSignup      RateLimitAction = "signup"
	ActionAPI         RateLimitAction = "api"
	ActionDemoSession RateLimitAction = "demo_session"
)

// RateLimitPolicy describes the limit applied to one action.
type RateLimitPolicy struct {
	MaxAttempts   int
	Window        time.Duration
	BlockDuration time.Duration
	Progressive   bool
}

// RateLimitDecision is the ephemeral outcome of a single limit check.
// Allowed defaults to false whenever the remote authority is unreachable.
type RateLimitDecision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Reason    string
}

// RateLimitRecord is the local, best-effort mirror of the remote authority's
// state for one (action, identifier) key. It is kept for inspection and
// telemetry only and is never consulted to grant access.
type RateLimitRecord struct {
	Identifier  string
	Action      RateLimitAction
	Attempts    int
	WindowStart time.Time
	LastAttempt time.Time
	Blocked     bool
}

// Expired reports whether the record's window has elapsed.
func (r *RateLimitRecord) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(r.WindowStart) > window
}
