// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/integration/entrypoint/controller"
	"github.com/dbooster/trustd/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	passwordController  *controller.PasswordController
	rateLimitController *controller.RateLimitController
	sessionController   *controller.SessionController
	accessController    *controller.AccessController
	auditController     *controller.AuditController
	apiRateLimiter      *middleware.RateLimiter
	sessionAuth         *middleware.SessionAuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	passwordController *controller.PasswordController,
	rateLimitController *controller.RateLimitController,
	sessionController *controller.SessionController,
	accessController *controller.AccessController,
	auditController *controller.AuditController,
	apiRateLimiter *middleware.RateLimiter,
	sessionAuth *middleware.SessionAuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		passwordController:  passwordController,
		rateLimitController: rateLimitController,
		sessionController:   sessionController,
		accessController:    accessController,
		auditController:     auditController,
		apiRateLimiter:      apiRateLimiter,
		sessionAuth:         sessionAuth,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.apiRateLimiter != nil {
		v1.Use(r.apiRateLimiter.Middleware())
	}
	{
		password := v1.Group("/password")
		{
			password.POST("/analyze", r.passwordController.Analyze)
			password.POST("/generate", r.passwordController.Generate)
		}

		// Policy reads are open; updates require a validated session.
		v1.GET("/policy", r.passwordController.GetPolicy)
		v1.PUT("/policy", r.sessionAuth.Authenticate(), r.passwordController.UpdatePolicy)

		ratelimit := v1.Group("/ratelimit")
		{
			ratelimit.POST("/check", r.rateLimitController.Check)
			ratelimit.GET("/stats", r.sessionAuth.Authenticate(), r.rateLimitController.Stats)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", r.sessionController.Create)
			sessions.POST("/validate", r.sessionController.Validate)
			sessions.DELETE("/:id", r.sessionController.Revoke)
		}

		v1.POST("/signup", r.accessController.Signup)
		v1.POST("/login", r.accessController.Login)

		audit := v1.Group("/audit")
		audit.Use(r.sessionAuth.Authenticate())
		{
			audit.GET("/events", r.auditController.Events)
		}
	}
}
