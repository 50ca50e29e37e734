package app

import (
	_ "talentbridge_backend/docs"
	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/middleware"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/service"
	"talentbridge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/user/skills", c.user.UpdateSkills)
		authGroup.DELETE("/user", c.user.DeleteAccount)
		authGroup.GET("/notifications", c.notification.List)

		// 3. 学生引导与学习路线
		a.registerStudentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/navigation/authorize", middleware.TryAuthMiddleware(a.Config), c.navigation.Authorize)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	nav := a.services.navigation

	student := group.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/onboarding/status", c.onboarding.Status)
		student.GET("/onboarding/skills", c.onboarding.SkillOptions)
		student.POST("/onboarding/skills", middleware.OnboardingGate(nav, service.PathSkillsSelection), c.onboarding.SelectSkills)

		quiz := student.Group("/quiz")
		quiz.Use(middleware.OnboardingGate(nav, service.PathQuiz))
		{
			quiz.GET("", c.assessment.GetQuiz)
			quiz.POST("/submit", c.assessment.Submit)
			quiz.GET("/results", c.assessment.Results)
			quiz.POST("/acknowledge", c.onboarding.AcknowledgeResults)
		}

		roadmap := student.Group("/roadmap")
		roadmap.Use(middleware.OnboardingGate(nav, service.PathRoadmap))
		{
			roadmap.GET("", c.roadmap.GetRoadmap)
			roadmap.POST("/tasks/:taskId/complete", c.roadmap.CompleteTask)
		}
	}
}
