package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/smk-nusantara/cms-api/internal/handler"
	"github.com/smk-nusantara/cms-api/internal/middleware"
	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/internal/repository"
	"github.com/smk-nusantara/cms-api/internal/service"
	"github.com/smk-nusantara/cms-api/pkg/config"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Content   *handler.ContentHandler
	Article   *handler.ArticleHandler
	Calendar  *handler.CalendarHandler
	Contact   *handler.ContactHandler
	SPMB      *handler.SPMBHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
}

// Setup registers all routes on the engine. Base middleware (recovery,
// request id, logging, CORS) is attached by the caller before this runs.
func Setup(
	r *gin.Engine,
	cfg *config.Config,
	h Handlers,
	authSvc *service.AuthService,
	metricsSvc *service.MetricsService,
	userRepo *repository.UserRepository,
) {
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/api/health", h.Health.Health)
	r.GET("/api/health/ready", h.Health.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if cfg.Uploads.ImageDir != "" {
		r.Static("/uploads", cfg.Uploads.ImageDir)
	}

	r.POST("/api/auth/login", h.Auth.Login)

	public := r.Group("/api/public")
	{
		public.GET("/alumni", h.Content.Alumni)
		public.GET("/testimoni", h.Content.Testimonials)
		public.GET("/articles", h.Article.PublicList)
		public.GET("/articles/categories", h.Article.PublicCategories)
		public.GET("/articles/:slug", h.Article.PublicDetail)
		// Alias kept for older frontend builds that fetch the calendar
		// under /api/public.
		public.GET("/calendar/events", h.Calendar.PublicEvents)
	}

	r.GET("/api/calendar/public/events", h.Calendar.PublicEvents)

	contact := r.Group("/api/contact")
	{
		contact.GET("/info", h.Contact.Info)
		contact.POST("/message", h.Contact.Message)
	}

	spmb := r.Group("/api/spmb")
	{
		spmb.GET("/school-info", h.SPMB.SchoolInfo)
		spmb.GET("/form-config", h.SPMB.FormConfig)
		spmb.POST("/register", h.SPMB.Register)
		spmb.GET("/receipt/:token", h.SPMB.Receipt)
	}

	admin := r.Group("/api/admin")
	admin.POST("/login", h.Auth.Login)

	protected := admin.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	{
		protected.GET("/profile", h.Auth.Profile)
		protected.GET("/dashboard-stats", h.Dashboard.Stats)

		articles := protected.Group("/articles")
		{
			articles.GET("", h.Article.AdminList)
			articles.POST("", h.Article.Create)
			articles.GET("/manage/categories", h.Article.Categories)
			articles.POST("/manage/categories", h.Article.CreateCategory)
			articles.GET("/:id", h.Article.AdminDetail)
			articles.PUT("/:id", h.Article.Update)
			articles.DELETE("/:id", h.Article.Delete)
			articles.POST("/:id/publish", h.Article.Publish)
			articles.POST("/:id/feature", h.Article.Feature)
		}

		registrations := protected.Group("/spmb/registrations")
		{
			registrations.GET("", h.SPMB.AdminList)
			registrations.GET("/export",
				middleware.Audit(userRepo, "EXPORT", "registrations"),
				h.SPMB.Export)
			registrations.GET("/:id", h.SPMB.AdminDetail)
			registrations.PUT("/:id/status", h.SPMB.UpdateStatus)
			registrations.DELETE("/:id", h.SPMB.Delete)
		}

		protected.GET("/spmb/download-package/:id",
			middleware.Audit(userRepo, "DOWNLOAD", "registrations"),
			h.SPMB.DownloadPackage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "rute tidak ditemukan",
		})
	})
}
