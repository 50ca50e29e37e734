package controller

import (
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Learners   *service.LearnerService
	Onboarding *service.OnboardingService
	Auth       *service.AuthService
}

func NewUserController(learners *service.LearnerService, onboarding *service.OnboardingService, auth *service.AuthService) *UserController {
	return &UserController{Learners: learners, Onboarding: onboarding, Auth: auth}
}

// Profile is the account as the web app sees it.
type Profile struct {
	ID        string                   `json:"id"`
	Type      model.UserType           `json:"type"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	CreatedAt time.Time                `json:"createdAt"`
	Status    service.OnboardingStatus `json:"onboarding"`
}

func profileOf(l model.Learner) Profile {
	return Profile{
		ID:        l.ID,
		Type:      l.Type,
		Name:      l.Name,
		Email:     l.Email,
		CreatedAt: l.CreatedAt,
		Status:    service.StatusOf(l),
	}
}

// @Summary 获取当前用户
// @Tags user
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	learner, err := c.Learners.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profileOf(learner))
}

type SkillsRequest struct {
	Skills []string `json:"skills"`
}

// UpdateSkills edits the skill list from the profile page. It never changes
// onboarding progress.
func (c *UserController) UpdateSkills(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	var req SkillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	status, err := c.Onboarding.UpdateSkills(ctx.Request.Context(), id, req.Skills)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

func (c *UserController) DeleteAccount(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	if err := c.Auth.DeleteAccount(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
