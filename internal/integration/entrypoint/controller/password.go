package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/usecase/password"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// PasswordController handles password analysis and generation endpoints.
type PasswordController struct {
	evaluator *password.Evaluator
	policies  *password.PolicyStore
}

// NewPasswordController creates a new password controller instance.
func NewPasswordController(evaluator *password.Evaluator, policies *password.PolicyStore) *PasswordController {
	return &PasswordController{
		evaluator: evaluator,
		policies:  policies,
	}
}

// Analyze handles POST /password/analyze requests. The submitted password is
// analyzed and discarded; it is never logged or persisted.
func (c *PasswordController) Analyze(ctx *gin.Context) {
	var req dto.AnalyzePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	analysis := c.evaluator.Evaluate(ctx.Request.Context(), req.Password, req.UserContext.ToUserContext())

	ctx.JSON(http.StatusOK, dto.ToPasswordAnalysisResponse(analysis))
}

// Generate handles POST /password/generate requests.
func (c *PasswordController) Generate(ctx *gin.Context) {
	var req dto.GeneratePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidInput),
		})
		return
	}

	generated, err := c.evaluator.Generate(req.Length)
	if err != nil {
		handleSecurityError(ctx, domainerror.NewSecurityError(
			domainerror.ErrCodeGenerateFailure,
			"failed to generate password",
			err,
		))
		return
	}

	analysis := c.evaluator.Evaluate(ctx.Request.Context(), generated, nil)

	ctx.JSON(http.StatusOK, dto.GeneratePasswordResponse{
		Password: generated,
		Analysis: dto.ToPasswordAnalysisResponse(analysis),
	})
}

// GetPolicy handles GET /policy requests.
func (c *PasswordController) GetPolicy(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToPasswordPolicyResponse(c.policies.Get()))
}

// UpdatePolicy handles PUT /policy requests.
func (c *PasswordController) UpdatePolicy(ctx *gin.Context) {
	var req dto.PasswordPolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid policy",
			Code:  string(domainerror.ErrCodeInvalidPolicy),
		})
		return
	}

	c.policies.Update(req.ToPasswordPolicy())

	ctx.JSON(http.StatusOK, dto.ToPasswordPolicyResponse(c.policies.Get()))
}
