package adapters

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dbooster/trustd/internal/domain/entity"
)

func sha1Hex(secret string) string {
	digest := sha1.Sum([]byte(secret))
	return strings.ToUpper(hex.EncodeToString(digest[:]))
}

func newOracle(t *testing.T, handler http.HandlerFunc) (*BreachOracleClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewBreachOracleClient(server.URL, "trustd-test", &http.Client{Timeout: time.Second})
	return client, server
}

func TestBreachOracleReportsCompromisedOnSuffixMatch(t *testing.T) {
	secret := "correct horse battery staple"
	digest := sha1Hex(secret)
	prefix, suffix := digest[:5], digest[5:]

	oracle, _ := newOracle(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/range/"+prefix {
			t.Errorf("unexpected path %q", got)
		}
		if r.Header.Get("Add-Padding") != "true" {
			t.Error("expected Add-Padding header")
		}
		w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n" + suffix + ":42\r\n"))
	})

	if got := oracle.Check(context.Background(), secret); got != entity.BreachStatusCompromised {
		t.Errorf("Check() = %v, want compromised", got)
	}
}

func TestBreachOracleReportsCleanWhenSuffixAbsent(t *testing.T) {
	oracle, _ := newOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n00D4F6E8FA6EECAD2A3AA415EEC418D38EC:2\r\n"))
	})

	if got := oracle.Check(context.Background(), "a genuinely unlisted secret"); got != entity.BreachStatusClean {
		t.Errorf("Check() = %v, want clean", got)
	}
}

func TestBreachOracleTreatsMalformedBodyAsUnavailable(t *testing.T) {
	oracle, _ := newOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a suffix listing"))
	})

	if got := oracle.Check(context.Background(), "a genuinely unlisted secret"); got != entity.BreachStatusUnavailable {
		t.Errorf("Check() = %v, want unavailable", got)
	}
}

func TestBreachOracleTreatsServerErrorAsUnavailable(t *testing.T) {
	oracle, _ := newOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if got := oracle.Check(context.Background(), "a genuinely unlisted secret"); got != entity.BreachStatusUnavailable {
		t.Errorf("Check() = %v, want unavailable", got)
	}
}

func TestBreachOracleFallbackCatchesKnownBreachedSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	oracle := NewBreachOracleClient(server.URL, "trustd-test", &http.Client{Timeout: time.Second})

	if got := oracle.Check(context.Background(), "password"); got != entity.BreachStatusCompromised {
		t.Errorf("Check() = %v, want compromised via fallback", got)
	}
}

func TestBreachOracleFallbackMissIsUnavailableNotClean(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	oracle := NewBreachOracleClient(server.URL, "trustd-test", &http.Client{Timeout: time.Second})

	if got := oracle.Check(context.Background(), "a genuinely unlisted secret"); got != entity.BreachStatusUnavailable {
		t.Errorf("Check() = %v, want unavailable", got)
	}
}
