package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(s *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: s}
}

// GetQuiz godoc
// @Summary 获取测验题目
// @Description Returns the learner's drawn quiz without answers, or the results when already submitted.
// @Tags assessment
// @Produce json
// @Success 200 {object} util.Response{data=service.QuizState}
// @Failure 503 {object} util.Response "quiz unavailable"
// @Router /api/quiz [get]
func (c *AssessmentController) GetQuiz(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	state, err := c.Service.StartQuiz(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// SubmitRequest maps question index to the chosen option index.
type SubmitRequest struct {
	Answers map[int]int `json:"answers"`
}

func (c *AssessmentController) Submit(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Service.SubmitQuiz(ctx.Request.Context(), id, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *AssessmentController) Results(ctx *gin.Context) {
	id, ok := currentLearnerID(ctx)
	if !ok {
		return
	}
	view, err := c.Service.Results(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
