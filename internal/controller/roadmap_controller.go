package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	Service *service.RoadmapService
}

func NewRoadmapController(s *service.RoadmapService) *RoadmapController {
	return &RoadmapController{Service: s}
}

func (c *RoadmapController) GetRoadmap(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	report, err := c.Service.Roadmap(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 完成任务
// @Tags roadmap
// @Produce json
// @Param taskId path string true "task id"
// @Success 200 {object} util.Response{data=service.ProgressReport}
// @Router /api/roadmap/tasks/{taskId}/complete [post]
func (c *RoadmapController) CompleteTask(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	report, err := c.Service.CompleteTask(ctx.Request.Context(), id, ctx.Param("taskId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
