package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/usecase/access"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// AccessController handles the signup and login gates.
type AccessController struct {
	signupUseCase *access.SignupUseCase
	loginUseCase  *access.LoginUseCase
}

// NewAccessController creates a new access controller instance.
func NewAccessController(signupUseCase *access.SignupUseCase, loginUseCase *access.LoginUseCase) *AccessController {
	return &AccessController{
		signupUseCase: signupUseCase,
		loginUseCase:  loginUseCase,
	}
}

// Signup handles POST /signup requests.
func (c *AccessController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := access.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Signals:  req.Signals.ToDeviceSignals(),
	}

	output, err := c.signupUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSecurityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SignupResponse{
		Analysis:     dto.ToPasswordAnalysisResponse(output.Analysis),
		PasswordHash: output.PasswordHash,
		Session:      dto.ToSessionResponse(output.Session),
	})
}

// Login handles POST /login requests.
func (c *AccessController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := access.LoginInput{
		Email:              req.Email,
		Password:           req.Password,
		StoredPasswordHash: req.StoredPasswordHash,
		Signals:            req.Signals.ToDeviceSignals(),
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSecurityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Session: dto.ToSessionResponse(output.Session),
	})
}
