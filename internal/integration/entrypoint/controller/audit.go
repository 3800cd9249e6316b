package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/adapter"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
	defaultEventScope = 24 * time.Hour
)

// AuditController handles audit event inspection endpoints.
type AuditController struct {
	reader adapter.AuditReader
}

// NewAuditController creates a new audit controller instance.
func NewAuditController(reader adapter.AuditReader) *AuditController {
	return &AuditController{
		reader: reader,
	}
}

// Events handles GET /audit/events requests. Optional query parameters:
// since (RFC 3339, defaults to 24 hours ago) and limit.
func (c *AuditController) Events(ctx *gin.Context) {
	since := time.Now().Add(-defaultEventScope)
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid since parameter, expected RFC 3339",
				Code:  string(domainerror.ErrCodeInvalidInput),
			})
			return
		}
		since = parsed
	}

	limit := defaultEventLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid limit parameter",
				Code:  string(domainerror.ErrCodeInvalidInput),
			})
			return
		}
		limit = min(parsed, maxEventLimit)
	}

	events, err := c.reader.Recent(ctx.Request.Context(), since, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to load audit events",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSecurityEventsResponse(events))
}
