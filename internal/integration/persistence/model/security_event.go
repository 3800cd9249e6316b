// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// SecurityEventModel represents the security_events table in the database.
type SecurityEventModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType         string    `gorm:"type:varchar(64);not null;index"`
	Severity          string    `gorm:"type:varchar(16);not null;index"`
	PartialIdentifier string    `gorm:"type:varchar(16)"`
	Metadata          string    `gorm:"type:text"`
	Timestamp         time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the SecurityEventModel.
func (SecurityEventModel) TableName() string {
	return "security_events"
}

// ToEntity converts a SecurityEventModel to a domain SecurityEvent entity.
func (m *SecurityEventModel) ToEntity() *entity.SecurityEvent {
	var metadata map[string]any
	if m.Metadata != "" {
		// Unreadable metadata degrades to nil rather than failing the read.
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}
	return &entity.SecurityEvent{
		EventType:         m.EventType,
		Severity:          entity.SecuritySeverity(m.Severity),
		PartialIdentifier: m.PartialIdentifier,
		Metadata:          metadata,
		Timestamp:         m.Timestamp,
	}
}

// FromEntity converts a domain SecurityEvent entity to a SecurityEventModel.
func FromEntity(event *entity.SecurityEvent) *SecurityEventModel {
	var metadata string
	if len(event.Metadata) > 0 {
		if encoded, err := json.Marshal(event.Metadata); err == nil {
			metadata = string(encoded)
		}
	}
	return &SecurityEventModel{
		ID:                uuid.New(),
		EventType:         event.EventType,
		Severity:          string(event.Severity),
		PartialIdentifier: event.PartialIdentifier,
		Metadata:          metadata,
		Timestamp:         event.Timestamp,
	}
}
