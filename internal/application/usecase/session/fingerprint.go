// Package session contains session issuance, validation, and revocation.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/dbooster/trustd/internal/domain/entity"
)

// signalSentinel substitutes any environment signal that could not be
// collected, so a missing signal never aborts fingerprint generation.
const signalSentinel = "unavailable"

// signalDelimiter joins the ordered signal list before hashing.
const signalDelimiter = "|"

// Fingerprint derives a stable, privacy-bounded identifier from the device
// signals. The signals are concatenated in a fixed order and hashed with
// SHA-256; the same environment always yields the same hex string.
func Fingerprint(signals entity.DeviceSignals) string {
	parts := []string{
		orSentinel(signals.UserAgent),
		orSentinel(signals.Screen),
		orSentinel(signals.Language),
		orSentinel(signals.Languages),
		orSentinel(signals.Timezone),
		cpuSignal(signals.CPUCount),
		orSentinel(signals.Platform),
		strconv.FormatBool(signals.CookiesEnabled),
		orSentinel(signals.Renderer),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, signalDelimiter)))
	return hex.EncodeToString(sum[:])
}

// SecurityScore grades the execution context the session was created in.
// Base 50, capped at 100.
func SecurityScore(signals entity.DeviceSignals) int {
	score := 50
	if signals.TransportSecure {
		score += 20
	}
	if signals.HasCrypto {
		score += 15
	}
	if signals.SecureContext {
		score += 10
	}
	if signals.HasWorkers {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

func orSentinel(signal string) string {
	if signal == "" {
		return signalSentinel
	}
	return signal
}

func cpuSignal(count int) string {
	if count <= 0 {
		return signalSentinel
	}
	return strconv.Itoa(count)
}
