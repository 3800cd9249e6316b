package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/domain/entity"
)

// Validation failure reasons surfaced to callers.
const (
	ReasonTampered             = "Validation data tampered"
	ReasonNoValidationRecord   = "No local validation record"
	ReasonAuthorityUnavailable = "Session authority unavailable"
)

// sessionIDBytes is the amount of randomness behind a session identifier.
const sessionIDBytes = 32

// fingerprintPrefixLength bounds how much of the fingerprint is persisted in
// the local validation record.
const fingerprintPrefixLength = 16

// Config carries session lifetime parameters.
type Config struct {
	Duration       time.Duration
	StaleRecordAge time.Duration
}

// Manager issues, validates, and revokes session tokens. A session is never
// considered valid unless both the remote authority and the local tamper
// checksum agree.
type Manager struct {
	authority adapter.SessionAuthority
	store     adapter.ValidationStore
	audit     adapter.AuditSink
	cfg       Config
}

// NewManager creates a session security manager.
func NewManager(authority adapter.SessionAuthority, store adapter.ValidationStore, audit adapter.AuditSink, cfg Config) *Manager {
	return &Manager{
		authority: authority,
		store:     store,
		audit:     audit,
		cfg:       cfg,
	}
}

// CreateSession mints a new session bound to the device fingerprint. Every
// call produces a fresh identifier; retries never reuse one.
func (m *Manager) CreateSession(ctx context.Context, signals entity.DeviceSignals) (*entity.SessionToken, error) {
	idBytes := make([]byte, sessionIDBytes)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	sessionID := hex.EncodeToString(idBytes)

	fingerprint := Fingerprint(signals)
	score := SecurityScore(signals)

	token, err := m.authority.Create(ctx, adapter.SessionCreateInput{
		SessionID:     sessionID,
		Fingerprint:   fingerprint,
		SecurityScore: score,
		UserAgent:     signals.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("session authority rejected creation: %w", err)
	}

	now := time.Now().UTC()
	record := &entity.ClientValidationRecord{
		SessionID:         sessionID,
		FingerprintPrefix: fingerprint[:fingerprintPrefixLength],
		Timestamp:         now.UnixMilli(),
	}
	record.Checksum = checksum(record.SessionID, record.FingerprintPrefix, record.Timestamp)

	if err := m.store.Save(ctx, record); err != nil {
		// Without the local record the session could never revalidate, so
		// creation fails rather than issuing a half-bound session.
		return nil, fmt.Errorf("failed to persist validation record: %w", err)
	}

	m.audit.Emit(ctx, entity.SecurityEvent{
		EventType:         "session_created",
		Severity:          entity.SeverityInfo,
		PartialIdentifier: sessionID[:8],
		Metadata:          map[string]any{"security_score": score},
		Timestamp:         now,
	})

	return &entity.SessionToken{
		ID:              sessionID,
		Token:           token,
		ExpiresAt:       now.Add(m.cfg.Duration),
		Fingerprint:     fingerprint,
		ServerValidated: true,
		SecurityScore:   score,
	}, nil
}

// ValidateSession checks a session against the remote authority and the
// local tamper record. Both must pass. A remote pass with a local checksum
// mismatch is reported as tampering regardless of what the remote said.
func (m *Manager) ValidateSession(ctx context.Context, sessionID, token string, signals entity.DeviceSignals) entity.SessionValidation {
	fingerprint := Fingerprint(signals)

	resp, err := m.authority.Validate(ctx, adapter.SessionValidateInput{
		SessionID:   sessionID,
		Token:       token,
		Fingerprint: fingerprint,
		UserAgent:   signals.UserAgent,
	})
	if err != nil {
		slog.Warn("session authority unreachable, treating session as invalid",
			"error", err,
		)
		return entity.SessionValidation{
			IsValid:              false,
			Reason:               ReasonAuthorityUnavailable,
			RequiresRevalidation: true,
		}
	}
	if !resp.Valid {
		return entity.SessionValidation{
			IsValid:              false,
			Reason:               resp.Reason,
			RequiresRevalidation: true,
			SecurityLevel:        resp.SecurityLevel,
		}
	}

	if intact, reason := m.localRecordIntact(ctx, sessionID); !intact {
		if reason == ReasonTampered {
			m.audit.Emit(ctx, entity.SecurityEvent{
				EventType:         "session_tamper_detected",
				Severity:          entity.SeverityHigh,
				PartialIdentifier: partialSessionID(sessionID),
				Timestamp:         time.Now().UTC(),
			})
		}
		return entity.SessionValidation{
			IsValid:              false,
			Reason:               reason,
			RequiresRevalidation: true,
		}
	}

	return entity.SessionValidation{
		IsValid:       true,
		SecurityLevel: resp.SecurityLevel,
	}
}

// RevokeSession invalidates a session remotely and deletes the local record
// unconditionally, so a revoked session can never be revalidated from stale
// local state even when the remote call fails.
func (m *Manager) RevokeSession(ctx context.Context, sessionID string) error {
	remoteErr := m.authority.Revoke(ctx, sessionID)
	if remoteErr != nil {
		slog.Warn("remote session revoke failed, deleting local record anyway",
			"error", remoteErr,
		)
	}

	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete validation record: %w", err)
	}

	m.audit.Emit(ctx, entity.SecurityEvent{
		EventType:         "session_revoked",
		Severity:          entity.SeverityInfo,
		PartialIdentifier: partialSessionID(sessionID),
		Timestamp:         time.Now().UTC(),
	})

	return remoteErr
}

// localRecordIntact recomputes the stored record's checksum and verifies it
// still belongs to the session being validated. A missing record and a
// mismatching one are distinct failures: only the latter is tampering.
func (m *Manager) localRecordIntact(ctx context.Context, sessionID string) (bool, string) {
	record, err := m.store.Load(ctx, sessionID)
	if err != nil {
		slog.Warn("failed to load validation record", "error", err)
		return false, ReasonNoValidationRecord
	}
	if record == nil {
		return false, ReasonNoValidationRecord
	}

	if record.Age(time.Now().UTC()) > m.cfg.StaleRecordAge {
		slog.Warn("validation record is stale",
			"session_id", partialSessionID(sessionID),
			"age", record.Age(time.Now().UTC()).String(),
		)
	}

	if record.SessionID != sessionID {
		return false, ReasonTampered
	}

	expected := checksum(record.SessionID, record.FingerprintPrefix, record.Timestamp)
	if record.Checksum != expected {
		return false, ReasonTampered
	}
	return true, ""
}

func partialSessionID(sessionID string) string {
	if len(sessionID) <= 8 {
		return sessionID
	}
	return sessionID[:8]
}
