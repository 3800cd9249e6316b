// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/usecase/ratelimit"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// RateLimiter enforces a per-client limit on an endpoint group. Decisions
// come from the shared limiter, so an unreachable authority denies requests
// here too.
type RateLimiter struct {
	limiter *ratelimit.Limiter
	action  entity.RateLimitAction
}

// NewRateLimiter creates rate limiting middleware for the given action.
func NewRateLimiter(limiter *ratelimit.Limiter, action entity.RateLimitAction) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		action:  action,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		decision := rl.limiter.Check(c.Request.Context(), clientIP, rl.action)
		if !decision.Allowed {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
