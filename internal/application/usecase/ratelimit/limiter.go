// Package ratelimit contains the fail-secure rate limiting use case.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// Denial reasons carried in RateLimitDecision.Reason. The failure branch is
// a domain value, not an error, so the fail-secure contract is visible in
// the type system.
const (
	ReasonAuthorityUnavailable = "authority_unavailable"
	ReasonUnknownAction        = "unknown_action"
	ReasonLimitExceeded        = "limit_exceeded"
	ReasonProgressivePenalty   = "progressive_penalty"
)

// partialIdentifierLength bounds how much of an identifier reaches the
// audit trail.
const partialIdentifierLength = 8

// defaultPolicies is the per-action policy table.
func defaultPolicies() map[entity.RateLimitAction]entity.RateLimitPolicy {
	return map[entity.RateLimitAction]entity.RateLimitPolicy{
		entity.ActionLogin: {
			MaxAttempts:   5,
			Window:        15 * time.Minute,
			BlockDuration: 30 * time.Minute,
			Progressive:   true,
		},
		entity.ActionSignup: {
			MaxAttempts:   3,
			Window:        60 * time.Minute,
			BlockDuration: 60 * time.Minute,
			Progressive:   true,
		},
		entity.ActionAPI: {
			MaxAttempts:   100,
			Window:        1 * time.Minute,
			BlockDuration: 5 * time.Minute,
			Progressive:   false,
		},
		entity.ActionDemoSession: {
			MaxAttempts:   10,
			Window:        10 * time.Minute,
			BlockDuration: 30 * time.Minute,
			Progressive:   true,
		},
	}
}

// Limiter tracks attempt counts per (action, identifier) key against a
// remote authority. The remote decision is authoritative; the local mirror
// exists for telemetry and progressive-violation detection only and is
// never consulted to grant access.
type Limiter struct {
	authority adapter.RateLimitAuthority
	audit     adapter.AuditSink
	policies  map[entity.RateLimitAction]entity.RateLimitPolicy

	mu      sync.Mutex
	records map[string]*entity.RateLimitRecord
}

// NewLimiter creates a rate limiter backed by the given remote authority.
func NewLimiter(authority adapter.RateLimitAuthority, audit adapter.AuditSink) *Limiter {
	return &Limiter{
		authority: authority,
		audit:     audit,
		policies:  defaultPolicies(),
		records:   make(map[string]*entity.RateLimitRecord),
	}
}

// Check asks the remote authority whether the attempt is allowed. Any
// authority failure resolves to denial: the limiter fails secure, never open.
func (l *Limiter) Check(ctx context.Context, identifier string, action entity.RateLimitAction) entity.RateLimitDecision {
	policy, ok := l.policies[action]
	if !ok {
		slog.Warn("rate limit check for unknown action", "action", action)
		l.emitDenial(ctx, identifier, action, ReasonUnknownAction)
		return entity.RateLimitDecision{Allowed: false, Reason: ReasonUnknownAction}
	}

	resp, err := l.authority.Check(ctx, identifier, action, policy)
	if err != nil {
		slog.Warn("rate limit authority unreachable, denying",
			"action", action,
			"error", err,
		)
		l.emitDenial(ctx, identifier, action, ReasonAuthorityUnavailable)
		return entity.RateLimitDecision{
			Allowed: false,
			Reason:  ReasonAuthorityUnavailable,
		}
	}

	record := l.mirror(identifier, action, policy, resp)

	if !resp.Allowed {
		l.emitDenial(ctx, identifier, action, reasonOrDefault(resp.Reason))
		return entity.RateLimitDecision{
			Allowed:   false,
			Remaining: resp.Remaining,
			ResetAt:   resp.ResetAt,
			Reason:    reasonOrDefault(resp.Reason),
		}
	}

	// Progressive escalation: once the local mirror has seen more attempts
	// than the policy allows inside the window, deny even an authority
	// grant and push the violation upstream.
	if policy.Progressive && record.Attempts > policy.MaxAttempts {
		l.emitDenial(ctx, identifier, action, ReasonProgressivePenalty)
		if reportErr := l.authority.ReportSuspicious(ctx, identifier, ReasonProgressivePenalty); reportErr != nil {
			slog.Warn("failed to report suspicious activity", "error", reportErr)
		}
		return entity.RateLimitDecision{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   record.WindowStart.Add(policy.BlockDuration),
			Reason:    ReasonProgressivePenalty,
		}
	}

	return entity.RateLimitDecision{
		Allowed:   true,
		Remaining: resp.Remaining,
		ResetAt:   resp.ResetAt,
	}
}

// ReportSuspiciousActivity asks the remote authority to tighten the limit
// for an identifier. It is a push, not a pull, and does not deny anything
// by itself.
func (l *Limiter) ReportSuspiciousActivity(ctx context.Context, identifier, reason string) {
	if err := l.authority.ReportSuspicious(ctx, identifier, reason); err != nil {
		slog.Warn("failed to report suspicious activity",
			"reason", reason,
			"error", err,
		)
		return
	}

	l.audit.Emit(ctx, entity.SecurityEvent{
		EventType:         "suspicious_activity_reported",
		Severity:          entity.SeverityWarning,
		PartialIdentifier: partialIdentifier(identifier),
		Metadata:          map[string]any{"reason": reason},
		Timestamp:         time.Now().UTC(),
	})
}

// Stats returns a snapshot of the local mirror for telemetry.
func (l *Limiter) Stats() []entity.RateLimitRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make([]entity.RateLimitRecord, 0, len(l.records))
	for _, record := range l.records {
		stats = append(stats, *record)
	}
	return stats
}

// mirror records the remote decision locally. A record whose window has
// elapsed is replaced, not merged.
func (l *Limiter) mirror(identifier string, action entity.RateLimitAction, policy entity.RateLimitPolicy, resp *adapter.RateLimitAuthorityResponse) entity.RateLimitRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	key := string(action) + ":" + identifier

	record, exists := l.records[key]
	if !exists || record.Expired(now, policy.Window) {
		record = &entity.RateLimitRecord{
			Identifier:  identifier,
			Action:      action,
			WindowStart: now,
		}
		l.records[key] = record
	}

	record.Attempts++
	if resp.Attempts > record.Attempts {
		record.Attempts = resp.Attempts
	}
	record.LastAttempt = now
	record.Blocked = !resp.Allowed

	return *record
}

// emitDenial writes a security-audit record for a denied attempt. Only a
// partial identifier is stored.
func (l *Limiter) emitDenial(ctx context.Context, identifier string, action entity.RateLimitAction, reason string) {
	l.audit.Emit(ctx, entity.SecurityEvent{
		EventType:         "rate_limit_denied",
		Severity:          entity.SeverityWarning,
		PartialIdentifier: partialIdentifier(identifier),
		Metadata: map[string]any{
			"action": string(action),
			"reason": reason,
		},
		Timestamp: time.Now().UTC(),
	})
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return ReasonLimitExceeded
	}
	return reason
}

func partialIdentifier(identifier string) string {
	if len(identifier) <= partialIdentifierLength {
		return identifier
	}
	return identifier[:partialIdentifierLength]
}
