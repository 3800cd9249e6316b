package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/adapter"
	"github.com/dbooster/trustd/internal/application/usecase/session"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// SessionController handles session lifecycle endpoints.
type SessionController struct {
	manager *session.Manager
	signals adapter.SignalSource
}

// NewSessionController creates a new session controller instance. The signal
// source fills in signals for callers that send none (demo sessions).
func NewSessionController(manager *session.Manager, signals adapter.SignalSource) *SessionController {
	return &SessionController{
		manager: manager,
		signals: signals,
	}
}

// Create handles POST /sessions requests.
func (c *SessionController) Create(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	signals := req.Signals.ToDeviceSignals()
	if signals == (entity.DeviceSignals{}) && c.signals != nil {
		signals = c.signals.Signals()
	}

	token, err := c.manager.CreateSession(ctx.Request.Context(), signals)
	if err != nil {
		handleSecurityError(ctx, domainerror.NewSecurityError(
			domainerror.ErrCodeSessionAuthorityDown,
			"failed to create session",
			err,
		))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(token))
}

// Validate handles POST /sessions/validate requests. An invalid session is
// still a successful validation query, so the verdict is returned with 200.
func (c *SessionController) Validate(ctx *gin.Context) {
	var req dto.ValidateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	validation := c.manager.ValidateSession(ctx.Request.Context(), req.SessionID, req.Token, req.Signals.ToDeviceSignals())

	ctx.JSON(http.StatusOK, dto.ToSessionValidationResponse(validation))
}

// Revoke handles DELETE /sessions/:id requests. The local record is always
// removed; a failed remote revoke does not resurrect it.
func (c *SessionController) Revoke(ctx *gin.Context) {
	sessionID := ctx.Param("id")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Missing session id",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	if err := c.manager.RevokeSession(ctx.Request.Context(), sessionID); err != nil {
		ctx.JSON(http.StatusOK, dto.MessageResponse{
			Message: "Session revoked locally; remote revocation pending",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Session revoked",
	})
}
