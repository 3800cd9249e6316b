package dto

import (
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// DeviceSignalsRequest carries the environment signals a device fingerprint
// is derived from. Omitted fields are replaced with sentinels server-side.
type DeviceSignalsRequest struct {
	UserAgent       string `json:"user_agent"`
	Screen          string `json:"screen"`
	Language        string `json:"language"`
	Languages       string `json:"languages"`
	Timezone        string `json:"timezone"`
	CPUCount        int    `json:"cpu_count"`
	Platform        string `json:"platform"`
	CookiesEnabled  bool   `json:"cookies_enabled"`
	Renderer        string `json:"renderer"`
	TransportSecure bool   `json:"transport_secure"`
	HasCrypto       bool   `json:"has_crypto"`
	SecureContext   bool   `json:"secure_context"`
	HasWorkers      bool   `json:"has_workers"`
}

// CreateSessionRequest represents the request body for session creation.
type CreateSessionRequest struct {
	Signals DeviceSignalsRequest `json:"signals"`
}

// SessionResponse represents an issued session.
type SessionResponse struct {
	ID            string    `json:"id"`
	Token         string    `json:"token"`
	ExpiresAt     time.Time `json:"expires_at"`
	Fingerprint   string    `json:"fingerprint"`
	SecurityScore int       `json:"security_score"`
}

// ValidateSessionRequest represents the request body for session validation.
type ValidateSessionRequest struct {
	SessionID string               `json:"session_id" binding:"required"`
	Token     string               `json:"token" binding:"required"`
	Signals   DeviceSignalsRequest `json:"signals"`
}

// SessionValidationResponse represents the outcome of session validation.
type SessionValidationResponse struct {
	Valid                bool   `json:"valid"`
	Reason               string `json:"reason,omitempty"`
	RequiresRevalidation bool   `json:"requires_revalidation"`
	SecurityLevel        string `json:"security_level,omitempty"`
}

// ToDeviceSignals converts the request DTO to domain signals.
func (r *DeviceSignalsRequest) ToDeviceSignals() entity.DeviceSignals {
	return entity.DeviceSignals{
		UserAgent:       r.UserAgent,
		Screen:          r.Screen,
		Language:        r.Language,
		Languages:       r.Languages,
		Timezone:        r.Timezone,
		CPUCount:        r.CPUCount,
		Platform:        r.Platform,
		CookiesEnabled:  r.CookiesEnabled,
		Renderer:        r.Renderer,
		TransportSecure: r.TransportSecure,
		HasCrypto:       r.HasCrypto,
		SecureContext:   r.SecureContext,
		HasWorkers:      r.HasWorkers,
	}
}

// ToSessionResponse converts an issued session to its response DTO.
func ToSessionResponse(session *entity.SessionToken) SessionResponse {
	return SessionResponse{
		ID:            session.ID,
		Token:         session.Token,
		ExpiresAt:     session.ExpiresAt,
		Fingerprint:   session.Fingerprint,
		SecurityScore: session.SecurityScore,
	}
}

// ToSessionValidationResponse converts a validation outcome to its response
// DTO.
func ToSessionValidationResponse(validation entity.SessionValidation) SessionValidationResponse {
	return SessionValidationResponse{
		Valid:                validation.IsValid,
		Reason:               validation.Reason,
		RequiresRevalidation: validation.RequiresRevalidation,
		SecurityLevel:        validation.SecurityLevel,
	}
}
