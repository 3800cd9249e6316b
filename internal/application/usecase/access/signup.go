// Package access composes rate limiting, password evaluation, and session
// issuance into the signup and login flows.
package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/application/usecase/password"
	"github.com/dbooster/trustd/internal/application/usecase/ratelimit"
	"github.com/dbooster/trustd/internal/application/usecase/session"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
)

// signupScoreGate is the minimum analysis score accepted at signup.
const signupScoreGate = 60

// SignupInput represents the input for the gated signup flow.
type SignupInput struct {
	Email    string
	Name     string
	Password string
	Signals  entity.DeviceSignals
}

// SignupOutput represents the outcome of a successful signup gate.
type SignupOutput struct {
	Analysis     *entity.PasswordAnalysis
	PasswordHash string
	Session      *entity.SessionToken
}

// SignupUseCase gates registration behind the rate limiter and the password
// strength evaluator, then issues a fingerprint-bound session.
type SignupUseCase struct {
	limiter   *ratelimit.Limiter
	evaluator *password.Evaluator
	hasher    adapter.PasswordHasher
	sessions  *session.Manager
}

// NewSignupUseCase creates a new SignupUseCase instance.
func NewSignupUseCase(
	limiter *ratelimit.Limiter,
	evaluator *password.Evaluator,
	hasher adapter.PasswordHasher,
	sessions *session.Manager,
) *SignupUseCase {
	return &SignupUseCase{
		limiter:   limiter,
		evaluator: evaluator,
		hasher:    hasher,
		sessions:  sessions,
	}
}

// Execute runs the signup gate.
func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	decision := uc.limiter.Check(ctx, input.Email, entity.ActionSignup)
	if !decision.Allowed {
		return nil, domainerror.NewSecurityError(
			domainerror.ErrCodeRateLimited,
			"too many signup attempts",
			domainerror.ErrRateLimited,
		)
	}

	userCtx := &entity.UserContext{
		Email:    input.Email,
		Name:     input.Name,
		Username: emailLocalPart(input.Email),
	}
	analysis := uc.evaluator.Evaluate(ctx, input.Password, userCtx)
	if analysis.IsCompromised || analysis.Score < signupScoreGate {
		return nil, domainerror.NewSecurityError(
			domainerror.ErrCodeWeakPassword,
			strings.Join(analysis.Feedback, "; "),
			domainerror.ErrWeakPassword,
		)
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := uc.sessions.CreateSession(ctx, input.Signals)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SignupOutput{
		Analysis:     analysis,
		PasswordHash: hash,
		Session:      token,
	}, nil
}

// emailLocalPart extracts the part of an email before the @.
func emailLocalPart(email string) string {
	return strings.SplitN(email, "@", 2)[0]
}
