// Package session contains session issuance, validation, and revocation.
package session

import (
	"testing"

	"github.com/dbooster/trustd/internal/domain/entity"
)

func testSignals() entity.DeviceSignals {
	return entity.DeviceSignals{
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64)",
		Screen:         "1920x1080x24",
		Language:       "en-US",
		Languages:      "en-US,en",
		Timezone:       "America/Sao_Paulo",
		CPUCount:       8,
		Platform:       "Linux x86_64",
		CookiesEnabled: true,
		Renderer:       "ANGLE (NVIDIA)",
	}
}

func TestFingerprintStability(t *testing.T) {
	signals := testSignals()

	first := Fingerprint(signals)
	for i := 0; i < 10; i++ {
		if got := Fingerprint(signals); got != first {
			t.Fatalf("fingerprint changed between calls: %q != %q", got, first)
		}
	}

	if len(first) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(first))
	}
}

func TestFingerprintChangesWithAnySignal(t *testing.T) {
	base := Fingerprint(testSignals())

	mutations := map[string]func(*entity.DeviceSignals){
		"user agent": func(s *entity.DeviceSignals) { s.UserAgent = "other-agent" },
		"screen":     func(s *entity.DeviceSignals) { s.Screen = "1280x720x24" },
		"language":   func(s *entity.DeviceSignals) { s.Language = "pt-BR" },
		"languages":  func(s *entity.DeviceSignals) { s.Languages = "pt-BR,pt" },
		"timezone":   func(s *entity.DeviceSignals) { s.Timezone = "UTC" },
		"cpu count":  func(s *entity.DeviceSignals) { s.CPUCount = 4 },
		"platform":   func(s *entity.DeviceSignals) { s.Platform = "Win32" },
		"cookies":    func(s *entity.DeviceSignals) { s.CookiesEnabled = false },
		"renderer":   func(s *entity.DeviceSignals) { s.Renderer = "SwiftShader" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			signals := testSignals()
			mutate(&signals)
			if Fingerprint(signals) == base {
				t.Errorf("changing %s did not change the fingerprint", name)
			}
		})
	}
}

func TestFingerprintMissingSignalsUseSentinel(t *testing.T) {
	// A fully empty environment still fingerprints deterministically.
	empty := entity.DeviceSignals{}

	first := Fingerprint(empty)
	second := Fingerprint(empty)
	if first != second {
		t.Error("empty-signal fingerprint is not deterministic")
	}
	if first == Fingerprint(testSignals()) {
		t.Error("empty-signal fingerprint should differ from a populated one")
	}
}

func TestSecurityScore(t *testing.T) {
	tests := []struct {
		name     string
		signals  entity.DeviceSignals
		expected int
	}{
		{
			name:     "base score",
			signals:  entity.DeviceSignals{},
			expected: 50,
		},
		{
			name:     "encrypted transport",
			signals:  entity.DeviceSignals{TransportSecure: true},
			expected: 70,
		},
		{
			name: "all capabilities capped at 100",
			signals: entity.DeviceSignals{
				TransportSecure: true,
				HasCrypto:       true,
				SecureContext:   true,
				HasWorkers:      true,
			},
			expected: 100,
		},
		{
			name: "crypto and workers",
			signals: entity.DeviceSignals{
				HasCrypto:  true,
				HasWorkers: true,
			},
			expected: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecurityScore(tt.signals); got != tt.expected {
				t.Errorf("SecurityScore() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestChecksumTimestampTolerance(t *testing.T) {
	// Timestamps inside the same coarse window produce the same checksum;
	// a later window produces a different one.
	base := checksum("session-id", "prefix", 1_700_000_000_000)
	same := checksum("session-id", "prefix", 1_700_000_000_999)
	later := checksum("session-id", "prefix", 1_700_000_001_000)

	if base != same {
		t.Error("expected checksums to match within the truncation window")
	}
	if base == later {
		t.Error("expected checksum to change across the truncation window")
	}
}

func TestChecksumDependsOnAllInputs(t *testing.T) {
	base := checksum("session-id", "prefix", 1_700_000_000_000)

	if checksum("other-id", "prefix", 1_700_000_000_000) == base {
		t.Error("checksum should depend on the session id")
	}
	if checksum("session-id", "other-prefix", 1_700_000_000_000) == base {
		t.Error("checksum should depend on the fingerprint prefix")
	}
}
