// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// handleSecurityError maps domain errors to HTTP responses.
func handleSecurityError(ctx *gin.Context, err error) {
	var secErr *domainerror.SecurityError
	if errors.As(err, &secErr) {
		ctx.JSON(statusCodeForSecurityError(secErr.Code), dto.ErrorResponse{
			Error: secErr.Message,
			Code:  string(secErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForSecurityError maps security error codes to HTTP status codes.
func statusCodeForSecurityError(code domainerror.SecurityErrorCode) int {
	switch code {
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidPolicy,
		domainerror.ErrCodeUnknownAction,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeSessionInvalid,
		domainerror.ErrCodeSessionExpired,
		domainerror.ErrCodeSessionTampered,
		domainerror.ErrCodeFingerprintMismatch:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited,
		domainerror.ErrCodeSuspiciousActivity:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeLimitAuthorityDown,
		domainerror.ErrCodeSessionAuthorityDown:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
