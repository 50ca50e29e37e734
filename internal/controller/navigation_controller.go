package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NavigationController struct {
	Service *service.NavigationService
}

func NewNavigationController(s *service.NavigationService) *NavigationController {
	return &NavigationController{Service: s}
}

// Authorize godoc
// @Summary 页面访问授权
// @Description Decides whether the web app may render path for the caller. Works with or without a token.
// @Tags navigation
// @Produce json
// @Param path query string true "page path"
// @Success 200 {object} util.Response{data=service.Decision}
// @Router /api/navigation/authorize [get]
func (c *NavigationController) Authorize(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		util.BadRequest(ctx, "path is required")
		return
	}

	learnerID := ""
	if claims := util.GetUserFromContext(ctx); claims != nil {
		learnerID = claims.LearnerID
	}

	decision, err := c.Service.AuthorizePath(ctx.Request.Context(), learnerID, path)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, decision)
}
