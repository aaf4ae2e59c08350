package app

import (
	"ai_course_backend/docs"
	"ai_course_backend/internal/config"
	"ai_course_backend/internal/middleware"
	"ai_course_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/session", c.session.Create)
	}

	// Learner-scoped routes require a guest-session token.
	learner := router.Group("/api")
	learner.Use(middleware.SessionMiddleware(cfg))
	{
		learner.GET("/profile", c.profile.Get)
		learner.PUT("/profile", c.profile.Update)
		learner.PUT("/profile/preferences", c.profile.UpdatePreferences)

		courses := learner.Group("/courses")
		{
			courses.GET("/enrolled", c.course.Enrolled)
			courses.POST("/:subject/start", c.course.Start)
			courses.POST("/:subject/next", c.course.Next)
			courses.POST("/:subject/previous", c.course.Previous)
			courses.POST("/:subject/regenerate", c.course.Regenerate)
			courses.POST("/:subject/enroll", c.course.Enroll)
			courses.POST("/:subject/unenroll", c.course.Unenroll)
			courses.GET("/:subject/progress", c.course.Progress)
			courses.GET("/:subject/history", c.course.History)
			courses.PUT("/:subject/position", c.course.SetPosition)
		}

		assessments := learner.Group("/assessments")
		{
			assessments.POST("/generate", c.assessment.Generate)
			assessments.POST("/answer", c.assessment.Answer)
			assessments.POST("/complete", c.assessment.Complete)
		}

		gemini := learner.Group("/gemini")
		{
			gemini.POST("/check-code", c.ai.CheckCode)
			gemini.POST("/grade-theory", c.ai.GradeTheory)
			gemini.POST("/explanation", c.ai.Explanation)
			gemini.POST("/reinforcement", c.ai.Reinforcement)
		}

		learner.POST("/chat", c.chat.Send)
	}
}
