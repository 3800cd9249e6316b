package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dbooster/trustd/internal/application/adapter"
)

const testTokenSecret = "unit-test-token-secret"

func signTestToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "session-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestSessionAuthorityCreateVerifiesMintedToken(t *testing.T) {
	minted := signTestToken(t, testTokenSecret, time.Now().Add(time.Hour))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sessions/create" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": minted})
	}))
	defer server.Close()

	client := NewSessionAuthorityClient(server.URL, "test-key", testTokenSecret, server.Client())
	token, err := client.Create(context.Background(), adapter.SessionCreateInput{
		SessionID:   "session-1",
		Fingerprint: "abc",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if token != minted {
		t.Errorf("Create() token = %q, want minted token", token)
	}
}

func TestSessionAuthorityCreateRejectsForeignSignature(t *testing.T) {
	minted := signTestToken(t, "some-other-secret", time.Now().Add(time.Hour))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": minted})
	}))
	defer server.Close()

	client := NewSessionAuthorityClient(server.URL, "test-key", testTokenSecret, server.Client())
	if _, err := client.Create(context.Background(), adapter.SessionCreateInput{SessionID: "session-1"}); err == nil {
		t.Fatal("Create() accepted a token signed with the wrong secret")
	}
}

func TestSessionAuthorityValidateRejectsBadSignatureLocally(t *testing.T) {
	serverHit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHit = true
		json.NewEncoder(w).Encode(map[string]any{"valid": true})
	}))
	defer server.Close()

	client := NewSessionAuthorityClient(server.URL, "test-key", testTokenSecret, server.Client())
	resp, err := client.Validate(context.Background(), adapter.SessionValidateInput{
		SessionID: "session-1",
		Token:     signTestToken(t, "some-other-secret", time.Now().Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if resp.Valid {
		t.Error("Validate() accepted a tampered token")
	}
	if serverHit {
		t.Error("Validate() consulted the authority for a token that fails local verification")
	}
}

func TestSessionAuthorityValidateRejectsExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"valid": true})
	}))
	defer server.Close()

	client := NewSessionAuthorityClient(server.URL, "test-key", testTokenSecret, server.Client())
	resp, err := client.Validate(context.Background(), adapter.SessionValidateInput{
		SessionID: "session-1",
		Token:     signTestToken(t, testTokenSecret, time.Now().Add(-time.Minute)),
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if resp.Valid {
		t.Error("Validate() accepted an expired token")
	}
}

func TestSessionAuthorityValidatePropagatesRemoteVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"valid": false, "reason": "Session revoked"})
	}))
	defer server.Close()

	client := NewSessionAuthorityClient(server.URL, "test-key", testTokenSecret, server.Client())
	resp, err := client.Validate(context.Background(), adapter.SessionValidateInput{
		SessionID: "session-1",
		Token:     signTestToken(t, testTokenSecret, time.Now().Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if resp.Valid || resp.Reason != "Session revoked" {
		t.Errorf("Validate() = %+v, want remote rejection propagated", resp)
	}
}

func TestSessionAuthorityRevokeSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSessionAuthorityClient(server.URL, "test-key", testTokenSecret, server.Client())
	if err := client.Revoke(context.Background(), "session-1"); err == nil {
		t.Fatal("Revoke() ignored a server error")
	}
}
