package dto

import (
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// RateLimitCheckRequest represents the request body for a rate limit check.
type RateLimitCheckRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

// RateLimitDecisionResponse represents the outcome of a rate limit check.
type RateLimitDecisionResponse struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	ResetAt   int64  `json:"reset_at"`
	Reason    string `json:"reason,omitempty"`
}

// RateLimitRecordResponse represents one mirrored rate limit record.
type RateLimitRecordResponse struct {
	Identifier  string    `json:"identifier"`
	Action      string    `json:"action"`
	Attempts    int       `json:"attempts"`
	WindowStart time.Time `json:"window_start"`
	LastAttempt time.Time `json:"last_attempt"`
	Blocked     bool      `json:"blocked"`
}

// RateLimitStatsResponse represents the local mirror state.
type RateLimitStatsResponse struct {
	Records []RateLimitRecordResponse `json:"records"`
}

// ToRateLimitDecisionResponse converts a domain decision to its response DTO.
func ToRateLimitDecisionResponse(decision entity.RateLimitDecision) RateLimitDecisionResponse {
	return RateLimitDecisionResponse{
		Allowed:   decision.Allowed,
		Remaining: decision.Remaining,
		ResetAt:   decision.ResetAt.UnixMilli(),
		Reason:    decision.Reason,
	}
}

// ToRateLimitStatsResponse converts mirrored records to their response DTO.
func ToRateLimitStatsResponse(records []entity.RateLimitRecord) RateLimitStatsResponse {
	out := make([]RateLimitRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, RateLimitRecordResponse{
			Identifier:  r.Identifier,
			Action:      string(r.Action),
			Attempts:    r.Attempts,
			WindowStart: r.WindowStart,
			LastAttempt: r.LastAttempt,
			Blocked:     r.Blocked,
		})
	}
	return RateLimitStatsResponse{Records: out}
}
