// Package access composes rate limiting, password evaluation, and session
// issuance into the signup and login flows.
package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/application/usecase/password"
	"github.com/dbooster/trustd/internal/application/usecase/ratelimit"
	"github.com/dbooster/trustd/internal/application/usecase/session"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
)

// Shared test doubles for the access flows.

type stubRateAuthority struct {
	deny bool
	fail bool
}

func (s *stubRateAuthority) Check(_ context.Context, _ string, _ entity.RateLimitAction, _ entity.RateLimitPolicy) (*adapter.RateLimitAuthorityResponse, error) {
	if s.fail {
		return nil, errors.New("unreachable")
	}
	return &adapter.RateLimitAuthorityResponse{
		Allowed:   !s.deny,
		Remaining: 3,
		ResetAt:   time.Now().Add(time.Minute),
	}, nil
}

func (s *stubRateAuthority) ReportSuspicious(_ context.Context, _, _ string) error {
	return nil
}

type stubBreachOracle struct {
	status entity.BreachStatus
}

func (s *stubBreachOracle) Check(_ context.Context, _ string) entity.BreachStatus {
	return s.status
}

type stubSessionAuthority struct{}

func (stubSessionAuthority) Create(_ context.Context, input adapter.SessionCreateInput) (string, error) {
	return "token-" + input.SessionID[:8], nil
}

func (stubSessionAuthority) Validate(_ context.Context, _ adapter.SessionValidateInput) (*adapter.SessionValidateResponse, error) {
	return &adapter.SessionValidateResponse{Valid: true}, nil
}

func (stubSessionAuthority) Revoke(_ context.Context, _ string) error {
	return nil
}

type memValidationStore struct {
	records map[string]*entity.ClientValidationRecord
}

func newMemValidationStore() *memValidationStore {
	return &memValidationStore{records: make(map[string]*entity.ClientValidationRecord)}
}

func (s *memValidationStore) Save(_ context.Context, record *entity.ClientValidationRecord) error {
	s.records[record.SessionID] = record
	return nil
}

func (s *memValidationStore) Load(_ context.Context, sessionID string) (*entity.ClientValidationRecord, error) {
	return s.records[sessionID], nil
}

func (s *memValidationStore) Delete(_ context.Context, sessionID string) error {
	delete(s.records, sessionID)
	return nil
}

type nopSink struct{}

func (nopSink) Emit(_ context.Context, _ entity.SecurityEvent) {}

// fakeHasher is a trivial reversible hasher for flow tests.
type fakeHasher struct{}

func (fakeHasher) Hash(pw string) (string, error) {
	return "hashed:" + pw, nil
}

func (fakeHasher) Verify(hashed, pw string) error {
	if hashed != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

func newSignupUseCase(rateAuthority *stubRateAuthority, breach entity.BreachStatus) *SignupUseCase {
	limiter := ratelimit.NewLimiter(rateAuthority, nopSink{})
	evaluator := password.NewEvaluator(
		password.NewPolicyStore(entity.DefaultPasswordPolicy()),
		&stubBreachOracle{status: breach},
	)
	sessions := session.NewManager(stubSessionAuthority{}, newMemValidationStore(), nopSink{}, session.Config{
		Duration:       time.Hour,
		StaleRecordAge: 3 * time.Hour,
	})
	return NewSignupUseCase(limiter, evaluator, fakeHasher{}, sessions)
}

func strongSignals() entity.DeviceSignals {
	return entity.DeviceSignals{
		UserAgent:       "test-agent",
		Screen:          "1920x1080x24",
		Language:        "en-US",
		TransportSecure: true,
		HasCrypto:       true,
	}
}

func TestSignupHappyPath(t *testing.T) {
	uc := newSignupUseCase(&stubRateAuthority{}, entity.BreachStatusClean)

	output, err := uc.Execute(context.Background(), SignupInput{
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		Password: "kT8#mQ2$vL5xW9z@",
		Signals:  strongSignals(),
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if output.Session == nil || output.Session.ID == "" {
		t.Error("expected an issued session")
	}
	if output.PasswordHash != "hashed:kT8#mQ2$vL5xW9z@" {
		t.Errorf("unexpected password hash %q", output.PasswordHash)
	}
	if output.Analysis.Score < 60 {
		t.Errorf("expected gate-passing score, got %d", output.Analysis.Score)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	uc := newSignupUseCase(&stubRateAuthority{}, entity.BreachStatusClean)

	_, err := uc.Execute(context.Background(), SignupInput{
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		Password: "aaaaaaaaaaaa",
		Signals:  strongSignals(),
	})

	var secErr *domainerror.SecurityError
	if !errors.As(err, &secErr) {
		t.Fatalf("expected SecurityError, got %v", err)
	}
	if secErr.Code != domainerror.ErrCodeWeakPassword {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeWeakPassword, secErr.Code)
	}
}

func TestSignupRejectsCompromisedPassword(t *testing.T) {
	uc := newSignupUseCase(&stubRateAuthority{}, entity.BreachStatusCompromised)

	_, err := uc.Execute(context.Background(), SignupInput{
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		Password: "kT8#mQ2$vL5xW9z@pR4&nB7*",
		Signals:  strongSignals(),
	})

	var secErr *domainerror.SecurityError
	if !errors.As(err, &secErr) {
		t.Fatalf("expected SecurityError, got %v", err)
	}
	if secErr.Code != domainerror.ErrCodeWeakPassword {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeWeakPassword, secErr.Code)
	}
}

func TestSignupRejectsPasswordContainingEmail(t *testing.T) {
	uc := newSignupUseCase(&stubRateAuthority{}, entity.BreachStatusClean)

	// The personal-info penalty must push this borderline password below
	// the gate.
	_, err := uc.Execute(context.Background(), SignupInput{
		Email:    "jane@x.com",
		Name:     "Jane Doe",
		Password: "jane12345678",
		Signals:  strongSignals(),
	})

	if err == nil {
		t.Fatal("expected rejection for a password containing the email local-part")
	}
}

func TestSignupDeniedWhenRateLimited(t *testing.T) {
	uc := newSignupUseCase(&stubRateAuthority{deny: true}, entity.BreachStatusClean)

	_, err := uc.Execute(context.Background(), SignupInput{
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		Password: "kT8#mQ2$vL5xW9z@",
		Signals:  strongSignals(),
	})

	var secErr *domainerror.SecurityError
	if !errors.As(err, &secErr) {
		t.Fatalf("expected SecurityError, got %v", err)
	}
	if secErr.Code != domainerror.ErrCodeRateLimited {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeRateLimited, secErr.Code)
	}
}

func TestSignupDeniedWhenAuthorityUnavailable(t *testing.T) {
	uc := newSignupUseCase(&stubRateAuthority{fail: true}, entity.BreachStatusClean)

	_, err := uc.Execute(context.Background(), SignupInput{
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		Password: "kT8#mQ2$vL5xW9z@",
		Signals:  strongSignals(),
	})

	var secErr *domainerror.SecurityError
	if !errors.As(err, &secErr) {
		t.Fatalf("expected SecurityError, got %v", err)
	}
	if secErr.Code != domainerror.ErrCodeRateLimited {
		t.Errorf("expected fail-secure denial, got code %s", secErr.Code)
	}
}
