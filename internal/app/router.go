package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"schoolhub_backend/docs"
	"schoolhub_backend/internal/config"
	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	secret := cfg.JWT.Secret

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/admin/otp", c.auth.RequestAdminOTP)
		public.POST("/auth/admin/verify", c.auth.VerifyAdminOTP)
	}

	// Mixed-audience reads: admins see more, assigned users see their view,
	// anonymous callers get the public shape.
	open := router.Group("/api")
	open.Use(middleware.TryAuth(secret, repos.admin))
	{
		open.GET("/schools/:id", c.school.GetSchool)
		open.GET("/assessments/:id", c.assessment.GetAssessment)
		open.GET("/assessments/:id/questions", c.questionBank.ViewAssessmentQuestions)
	}

	// Staff routes
	user := router.Group("/api")
	user.Use(middleware.UserAuth(secret))
	{
		user.GET("/users/me", c.teacher.Profile)
		user.GET("/users/me/takers", c.assessment.MyTakers)
		user.GET("/takers/:takerId", c.assessment.GetTaker)
		user.POST("/takers/:takerId/start", c.assessment.StartAssessment)
		user.POST("/takers/:takerId/submit", c.assessment.SubmitAssessment)
	}

	// Admin routes
	admin := router.Group("/api")
	admin.Use(middleware.AdminAuth(secret, repos.admin))
	{
		admin.GET("/admins/me", c.admin.Me)
		admin.POST("/admins", c.admin.CreateAdmin)
		admin.GET("/admins", c.admin.ListAdmins)
		admin.DELETE("/admins/:id", c.admin.DeleteAdmin)

		admin.POST("/schools", c.school.CreateSchool)
		admin.GET("/schools", c.school.ListSchools)
		admin.PUT("/schools/:id", c.school.UpdateSchool)
		admin.DELETE("/schools/:id", c.school.DeleteSchool)
		admin.POST("/schools/:id/logo", c.school.UploadLogo)

		admin.POST("/schools/:id/admins", c.admin.AssignSchoolAdmin)
		admin.GET("/schools/:id/admins", c.admin.ListSchoolAdmins)
		admin.PUT("/schools/:id/admins/:adminId", c.admin.UpdateSchoolAdmin)
		admin.DELETE("/schools/:id/admins/:adminId", c.admin.RemoveSchoolAdmin)

		admin.POST("/schools/:id/teachers", c.teacher.CreateTeacher)
		admin.GET("/schools/:id/teachers", c.teacher.ListTeachers)
		admin.PUT("/schools/:id/teachers/:userId", c.teacher.UpdateTeacher)
		admin.DELETE("/schools/:id/teachers/:userId", c.teacher.RemoveTeacher)

		admin.POST("/assessments", c.assessment.CreateAssessment)
		admin.GET("/assessments", c.assessment.ListAssessments)
		admin.PUT("/assessments/:id", c.assessment.UpdateAssessment)
		admin.DELETE("/assessments/:id", c.assessment.DeleteAssessment)
		admin.POST("/assessments/:id/grade", c.assessment.GradeAssessment)

		admin.POST("/assessments/:id/takers", c.assessment.AssignTaker)
		admin.GET("/assessments/:id/takers", c.assessment.ListTakers)
		admin.PUT("/takers/:takerId", c.assessment.UpdateTaker)
		admin.DELETE("/takers/:takerId", c.assessment.DeleteTaker)

		admin.POST("/assessments/:id/questions", c.questionBank.AddAssessmentQuestion)
		admin.DELETE("/assessments/:id/questions/:questionId", c.questionBank.RemoveAssessmentQuestion)

		admin.POST("/questions", c.questionBank.CreateQuestion)
		admin.GET("/questions", c.questionBank.ListQuestions)
		admin.GET("/questions/:id", c.questionBank.GetQuestion)
		admin.PUT("/questions/:id", c.questionBank.UpdateQuestion)
		admin.DELETE("/questions/:id", c.questionBank.DeleteQuestion)
	}
}
