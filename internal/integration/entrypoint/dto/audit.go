package dto

import (
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// SecurityEventResponse represents one persisted audit event.
type SecurityEventResponse struct {
	EventType         string         `json:"event_type"`
	Severity          string         `json:"severity"`
	PartialIdentifier string         `json:"partial_identifier,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
}

// SecurityEventsResponse represents a page of audit events, newest first.
type SecurityEventsResponse struct {
	Events []SecurityEventResponse `json:"events"`
}

// ToSecurityEventsResponse converts domain events to their response DTO.
func ToSecurityEventsResponse(events []entity.SecurityEvent) SecurityEventsResponse {
	out := make([]SecurityEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, SecurityEventResponse{
			EventType:         e.EventType,
			Severity:          string(e.Severity),
			PartialIdentifier: e.PartialIdentifier,
			Metadata:          e.Metadata,
			Timestamp:         e.Timestamp,
		})
	}
	return SecurityEventsResponse{Events: out}
}
