package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	Service *service.OnboardingService
}

func NewOnboardingController(s *service.OnboardingService) *OnboardingController {
	return &OnboardingController{Service: s}
}

func (c *OnboardingController) Status(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	status, err := c.Service.Status(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

func (c *OnboardingController) SkillOptions(ctx *gin.Context) {
	util.Success(ctx, c.Service.SkillOptions())
}

// @Summary 提交技能选择
// @Tags onboarding
// @Accept json
// @Produce json
// @Param body body SkillsRequest true "selected skills"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "empty selection"
// @Router /api/onboarding/skills [post]
func (c *OnboardingController) SelectSkills(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	var req SkillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status, err := c.Service.SelectSkills(ctx.Request.Context(), id, req.Skills)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

func (c *OnboardingController) AcknowledgeResults(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	status, err := c.Service.AcknowledgeResults(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
