package entity

import "time"

// DeviceSignals carries the environment signals a device fingerprint is
// derived from. Missing signals are substituted with a sentinel rather than
// aborting fingerprint generation.
type DeviceSignals struct {
	UserAgent       string
	Screen          string
	Language        string
	Languages       string
	Timezone        string
	CPUCount        int
	Platform        string
	CookiesEnabled  bool
	Renderer        string
	TransportSecure bool
	HasCrypto       bool
	SecureContext   bool
	HasWorkers      bool
}

// SessionToken is an issued session bound to a device fingerprint.
// It is invalidated on explicit revoke, expiry, or fingerprint mismatch.
type SessionToken struct {
	ID              string
	Token           string
	ExpiresAt       time.Time
	Fingerprint     string
	ServerValidated bool
	SecurityScore   int
}

// SessionValidation is the outcome of validating an existing session.
type SessionValidation struct {
	IsValid              bool
	Reason               string
	RequiresRevalidation bool
	SecurityLevel        string
}

// ClientValidationRecord is the locally stored tamper-evidence for a session.
// The checksum is recomputed and compared on every validation; any mismatch
// invalidates the session client-side regardless of the remote answer.
type ClientValidationRecord struct {
	SessionID         string `json:"session_id"`
	FingerprintPrefix string `json:"fingerprint_prefix"`
	Timestamp         int64  `json:"timestamp"`
	Checksum          string `json:"checksum"`
}

// Age returns how long ago the record was written.
func (r *ClientValidationRecord) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(r.Timestamp))
}

// SecurityEvent is a structured audit record emitted by the security
// components. Identifiers are stored partially to avoid keeping full
// identifiers in logs.
type SecurityEvent struct {
	EventType         string
	Severity          SecuritySeverity
	PartialIdentifier string
	Metadata          map[string]any
	Timestamp         time.Time
}

// SecuritySeverity grades audit events.
type SecuritySeverity string

const (
	SeverityInfo     SecuritySeverity = "info"
	SeverityWarning  SecuritySeverity = "warning"
	SeverityHigh     SecuritySeverity = "high"
	SeverityCritical SecuritySeverity = "critical"
)
