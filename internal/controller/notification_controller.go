package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Service *service.NotificationService
}

func NewNotificationController(s *service.NotificationService) *NotificationController {
	return &NotificationController{Service: s}
}

func (c *NotificationController) List(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.Service.List(ctx.Request.Context(), id))
}
