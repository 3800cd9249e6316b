package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/usecase/session"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// SessionIDKey is the context key for the validated session's ID.
const SessionIDKey ContextKey = "session_id"

// sessionIDHeader carries the session id alongside the bearer token.
const sessionIDHeader = "X-Session-ID"

// SessionAuthMiddleware guards endpoints behind full session validation:
// both the remote authority and the local tamper check must pass.
type SessionAuthMiddleware struct {
	manager *session.Manager
}

// NewSessionAuthMiddleware creates a new session auth middleware instance.
func NewSessionAuthMiddleware(manager *session.Manager) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		manager: manager,
	}
}

// Authenticate returns a Gin middleware handler that enforces session
// validation.
func (m *SessionAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionIDHeader)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "X-Session-ID header is required",
				Code:  string(domainerror.ErrCodeMissingFields),
			})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Bearer token is required",
				Code:  string(domainerror.ErrCodeSessionInvalid),
			})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		signals := entity.DeviceSignals{UserAgent: c.Request.UserAgent()}
		validation := m.manager.ValidateSession(c.Request.Context(), sessionID, token, signals)
		if !validation.IsValid {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: validation.Reason,
				Code:  string(domainerror.ErrCodeSessionInvalid),
			})
			c.Abort()
			return
		}

		c.Set(string(SessionIDKey), sessionID)
		c.Next()
	}
}
