package access

import (
	"context"
	"fmt"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/application/usecase/ratelimit"
	"github.com/dbooster/trustd/internal/application/usecase/session"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
)

// LoginInput represents the input for the gated login flow. The identity
// backend supplies the stored hash; this layer verifies the candidate
// against it and binds the resulting session to the device.
type LoginInput struct {
	Email              string
	Password           string
	StoredPasswordHash string
	Signals            entity.DeviceSignals
}

// LoginOutput represents the outcome of a successful login gate.
type LoginOutput struct {
	Session *entity.SessionToken
}

// LoginUseCase gates login behind the rate limiter and credential check,
// then issues a fingerprint-bound session.
type LoginUseCase struct {
	limiter  *ratelimit.Limiter
	hasher   adapter.PasswordHasher
	sessions *session.Manager
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(limiter *ratelimit.Limiter, hasher adapter.PasswordHasher, sessions *session.Manager) *LoginUseCase {
	return &LoginUseCase{
		limiter:  limiter,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Execute runs the login gate.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	decision := uc.limiter.Check(ctx, input.Email, entity.ActionLogin)
	if !decision.Allowed {
		return nil, domainerror.NewSecurityError(
			domainerror.ErrCodeRateLimited,
			"too many login attempts",
			domainerror.ErrRateLimited,
		)
	}

	if err := uc.hasher.Verify(input.StoredPasswordHash, input.Password); err != nil {
		uc.limiter.ReportSuspiciousActivity(ctx, input.Email, "failed_credential_check")
		// Generic message to prevent credential probing.
		return nil, domainerror.NewSecurityError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, err := uc.sessions.CreateSession(ctx, input.Signals)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginOutput{Session: token}, nil
}
