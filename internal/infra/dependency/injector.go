// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dbooster/trustd/config"
	"github.com/dbooster/trustd/internal/application/usecase/access"
	"github.com/dbooster/trustd/internal/application/usecase/password"
	"github.com/dbooster/trustd/internal/application/usecase/ratelimit"
	"github.com/dbooster/trustd/internal/application/usecase/session"
	"github.com/dbooster/trustd/internal/domain/entity"
	"github.com/dbooster/trustd/internal/infra/server/router"
	"github.com/dbooster/trustd/internal/integration/adapters"
	"github.com/dbooster/trustd/internal/integration/audit"
	"github.com/dbooster/trustd/internal/integration/cache"
	"github.com/dbooster/trustd/internal/integration/entrypoint/controller"
	"github.com/dbooster/trustd/internal/integration/entrypoint/middleware"
	"github.com/dbooster/trustd/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
	Audit  *audit.Sink
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) *Injector {
	// Audit trail
	eventRepo := persistence.NewSecurityEventRepository(db)
	var alerts audit.AlertSender
	if cfg.Audit.AlertsEnabled && cfg.Audit.ResendAPIKey != "" {
		alerts = audit.NewResendAlertSender(cfg.Audit.ResendAPIKey, cfg.Audit.AlertFrom, cfg.Audit.AlertTo)
	}
	auditSink := audit.NewSink(eventRepo, alerts)

	// Remote authorities and breach oracle
	breachOracle := adapters.NewBreachOracleClient(
		cfg.BreachCheck.BaseURL,
		cfg.BreachCheck.UserAgent,
		&http.Client{Timeout: cfg.BreachCheck.Timeout},
	)
	authorityHTTP := &http.Client{Timeout: cfg.Authority.Timeout}
	rateAuthority := adapters.NewRateLimitAuthorityClient(cfg.Authority.RateLimitURL, cfg.Authority.APIKey, authorityHTTP)
	sessionAuthority := adapters.NewSessionAuthorityClient(cfg.Authority.SessionURL, cfg.Authority.APIKey, cfg.Authority.TokenSecret, authorityHTTP)

	// Local stores
	validationStore := cache.NewRedisValidationStore(redisClient, cfg.Session.StaleRecordAge)

	// Use cases
	limiter := ratelimit.NewLimiter(rateAuthority, auditSink)
	policies := password.NewPolicyStore(entity.DefaultPasswordPolicy())
	evaluator := password.NewEvaluator(policies, breachOracle)
	sessionManager := session.NewManager(sessionAuthority, validationStore, auditSink, session.Config{
		Duration:       cfg.Session.Duration,
		StaleRecordAge: cfg.Session.StaleRecordAge,
	})
	hasher := adapters.NewPasswordHasher()
	signupUseCase := access.NewSignupUseCase(limiter, evaluator, hasher, sessionManager)
	loginUseCase := access.NewLoginUseCase(limiter, hasher, sessionManager)

	// Controllers and middleware
	healthController := controller.NewHealthController(dbHealthChecker, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return redisClient.Ping(ctx).Err() == nil
	})
	passwordController := controller.NewPasswordController(evaluator, policies)
	rateLimitController := controller.NewRateLimitController(limiter)
	sessionController := controller.NewSessionController(sessionManager, adapters.NewHostSignalSource(cfg.BreachCheck.UserAgent))
	accessController := controller.NewAccessController(signupUseCase, loginUseCase)
	auditController := controller.NewAuditController(auditSink)
	apiRateLimiter := middleware.NewRateLimiter(limiter, entity.ActionAPI)
	sessionAuth := middleware.NewSessionAuthMiddleware(sessionManager)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Audit:  auditSink,
		Router: router.NewRouter(
			healthController,
			passwordController,
			rateLimitController,
			sessionController,
			accessController,
			auditController,
			apiRateLimiter,
			sessionAuth,
		),
	}
}
