package controller

import (
	"errors"
	"net/http"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the unified response.
func respondError(ctx *gin.Context, err error) {
	switch {
	case util.IsConfigurationError(err):
		util.Error(ctx, http.StatusServiceUnavailable, "quiz unavailable")
	case errors.Is(err, model.ErrEmptySkills),
		errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrEmptyTaskID),
		errors.Is(err, util.ErrInvalidUserType):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrLearnerNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrNotStudent):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrSkillsNotSelected),
		errors.Is(err, model.ErrQuizNotCompleted),
		errors.Is(err, model.ErrOnboardingIncomplete),
		errors.Is(err, model.ErrQuizAlreadyCompleted),
		errors.Is(err, util.ErrQuizNotStarted),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func currentLearnerID(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.LearnerID == "" {
		util.Unauthorized(ctx)
		return "", false
	}
	return claims.LearnerID, true
}
