package app

import (
	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/middleware"
	"eduplatform_backend/internal/model"
	"eduplatform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.RoleStudent))
	{
		student.POST("/assessments/submit", c.assessment.SubmitAssessment)
		student.GET("/assessments/:id/result", c.assessment.GetResult)
		student.POST("/assignments/:id/submit", c.assignment.SubmitAssignment)
	}
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.RoleInstructor))
	{
		instructor.POST("/assessments", c.assessment.CreateAssessment)
		instructor.POST("/assignments", c.assignment.CreateAssignment)
		instructor.GET("/assignments/:id/submissions", c.assignment.GetSubmissions)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/users", c.user.CreateUser)
		admin.GET("/users", c.user.ListUsers)
		admin.DELETE("/users", c.user.DeleteUser)
	}
}
