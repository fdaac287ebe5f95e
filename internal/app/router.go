package app

import (
	"studyset_backend/docs"
	"studyset_backend/internal/config"
	"studyset_backend/internal/middleware"
	"studyset_backend/internal/model"
	"studyset_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAuthenticatedRoutes(authGroup, c)
	}

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.GET("/users", c.admin.ListUsers)
		adminGroup.POST("/users/:id/grant-admin", c.admin.GrantAdmin)
		adminGroup.POST("/users/:id/lock", c.admin.LockUser)
		adminGroup.POST("/users/:id/unlock", c.admin.UnlockUser)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/refresh", c.auth.Refresh)
		public.POST("/auth/logout", c.auth.Logout)

		// Browsing is open to guests; TryAuth lets a logged-in caller
		// through with identity attached without requiring it.
		public.GET("/search", middleware.TryAuthMiddleware(a.Config), c.search.Search)
		public.GET("/picks", middleware.TryAuthMiddleware(a.Config), c.search.RandomPicks)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(a.Config), c.course.GetDetail)
		public.GET("/practice-tests/:id", middleware.TryAuthMiddleware(a.Config), c.practiceTest.GetDetail)
		public.GET("/practice-tests/:id/random", middleware.TryAuthMiddleware(a.Config), c.practiceTest.GetRandomQuestions)
	}
}

func (a *App) registerAuthenticatedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/me", c.user.GetProfile)
	rg.PUT("/users/me", c.user.UpdateProfile)
	rg.POST("/users/me/avatar", c.user.UploadAvatar)

	rg.POST("/courses", c.course.CreateCourse)
	rg.PUT("/courses/:id", c.course.UpdateCourse)
	rg.DELETE("/courses/:id", c.course.DeleteCourse)
	rg.DELETE("/courses/:id/cards", c.course.DeleteCards)

	rg.POST("/practice-tests", c.practiceTest.CreateTest)
	rg.PUT("/practice-tests/:id", c.practiceTest.UpdateTest)
	rg.DELETE("/practice-tests/:id", c.practiceTest.DeleteTest)
	rg.DELETE("/practice-tests/:id/options", c.practiceTest.DeleteOptions)
	rg.DELETE("/practice-tests/:id/questions", c.practiceTest.DeleteQuestions)
	rg.POST("/practice-tests/:id/submit", c.practiceTest.SubmitTest)

	rg.GET("/history", c.practiceTest.ListMyHistory)
	rg.GET("/history/:resultId", c.practiceTest.GetHistoryDetail)
}
