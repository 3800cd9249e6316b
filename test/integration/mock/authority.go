// Package mock provides in-process doubles for the remote dependencies the
// integration suite runs against.
package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Authority modes.
const (
	ModeAllow = "allow"
	ModeDeny  = "deny"
	ModeDown  = "down"
)

// RateLimitAuthority is a controllable stand-in for the remote rate-limit
// authority.
type RateLimitAuthority struct {
	mu       sync.Mutex
	mode     string
	attempts map[string]int
	server   *httptest.Server
}

// NewRateLimitAuthority starts a mock authority in allow mode.
func NewRateLimitAuthority() *RateLimitAuthority {
	a := &RateLimitAuthority{
		mode:     ModeAllow,
		attempts: make(map[string]int),
	}
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	return a
}

// URL returns the mock authority's base URL.
func (a *RateLimitAuthority) URL() string { return a.server.URL }

// SetMode switches the authority between allow, deny, and down.
func (a *RateLimitAuthority) SetMode(mode string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = mode
}

// Close shuts the mock server down.
func (a *RateLimitAuthority) Close() { a.server.Close() }

func (a *RateLimitAuthority) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	mode := a.mode
	a.mu.Unlock()

	if mode == ModeDown {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	switch r.URL.Path {
	case "/v1/ratelimit/check":
		var req struct {
			Identifier string `json:"identifier"`
			Action     string `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		a.mu.Lock()
		key := req.Action + ":" + req.Identifier
		a.attempts[key]++
		attempts := a.attempts[key]
		a.mu.Unlock()

		resp := map[string]any{
			"allowed":   mode == ModeAllow,
			"remaining": 100 - attempts,
			"resetTime": time.Now().Add(time.Minute).UnixMilli(),
			"attempts":  attempts,
		}
		if mode == ModeDeny {
			resp["reason"] = "Too many attempts"
			resp["remaining"] = 0
		}
		json.NewEncoder(w).Encode(resp)

	case "/v1/ratelimit/report":
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// SessionAuthority is a stand-in for the remote session authority. It mints
// real HS256 tokens so the client-side signature check passes.
type SessionAuthority struct {
	mu       sync.Mutex
	secret   []byte
	sessions map[string]bool
	server   *httptest.Server
}

// NewSessionAuthority starts a mock session authority signing with secret.
func NewSessionAuthority(secret string) *SessionAuthority {
	a := &SessionAuthority{
		secret:   []byte(secret),
		sessions: make(map[string]bool),
	}
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	return a
}

// URL returns the mock authority's base URL.
func (a *SessionAuthority) URL() string { return a.server.URL }

// Close shuts the mock server down.
func (a *SessionAuthority) Close() { a.server.Close() }

func (a *SessionAuthority) handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/sessions/create":
		var req struct {
			SessionID string `json:"sessionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": req.SessionID,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString(a.secret)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		a.mu.Lock()
		a.sessions[req.SessionID] = true
		a.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]string{"token": signed})

	case "/v1/sessions/validate":
		var req struct {
			SessionID string `json:"sessionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		a.mu.Lock()
		valid := a.sessions[req.SessionID]
		a.mu.Unlock()

		resp := map[string]any{"valid": valid}
		if !valid {
			resp["reason"] = "Session not found"
		}
		json.NewEncoder(w).Encode(resp)

	case "/v1/sessions/revoke":
		var req struct {
			SessionID string `json:"sessionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		a.mu.Lock()
		delete(a.sessions, req.SessionID)
		a.mu.Unlock()

		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
