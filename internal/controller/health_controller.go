package controller

import (
	"context"
	"net/http"
	"time"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store   repository.KVStore
	Catalog *catalog.Provider
}

func NewHealthController(store repository.KVStore, cat *catalog.Provider) *HealthController {
	return &HealthController{Store: store, Catalog: cat}
}

// @Summary 健康检查
// @Description 检查存储和题库状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.Store.Ping(pingCtx); err != nil {
		util.ErrorWithData(ctx, http.StatusServiceUnavailable, "Storage unavailable", gin.H{"error": err.Error()})
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"storage": "up",
			"catalog": c.Catalog.Current().String(),
		},
	})
}
