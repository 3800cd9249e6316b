package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbooster/trustd/internal/application/usecase/ratelimit"
	"github.com/dbooster/trustd/internal/domain/entity"
	domainerror "github.com/dbooster/trustd/internal/domain/error"
	"github.com/dbooster/trustd/internal/integration/entrypoint/dto"
)

// RateLimitController handles rate limit inspection endpoints.
type RateLimitController struct {
	limiter *ratelimit.Limiter
}

// NewRateLimitController creates a new rate limit controller instance.
func NewRateLimitController(limiter *ratelimit.Limiter) *RateLimitController {
	return &RateLimitController{
		limiter: limiter,
	}
}

// Check handles POST /ratelimit/check requests. A denial is still a
// successful query, so the decision is returned with 200.
func (c *RateLimitController) Check(ctx *gin.Context) {
	var req dto.RateLimitCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	decision := c.limiter.Check(ctx.Request.Context(), req.Identifier, entity.RateLimitAction(req.Action))

	ctx.JSON(http.StatusOK, dto.ToRateLimitDecisionResponse(decision))
}

// Stats handles GET /ratelimit/stats requests.
func (c *RateLimitController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToRateLimitStatsResponse(c.limiter.Stats()))
}
