package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geekpie/portfolio-backend/internal/config"
	"github.com/geekpie/portfolio-backend/internal/http/handlers"
	"github.com/geekpie/portfolio-backend/internal/http/middleware"
	"github.com/geekpie/portfolio-backend/internal/models"
	"github.com/geekpie/portfolio-backend/internal/service"
)

// SetupRouter собирает все маршруты API.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ContentHandler,
	aiSectorHandler *handlers.ContentHandler,
	generateHandler *handlers.GenerateHandler,
	contactHandler *handlers.ContactHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
	uploadDirPath string,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/uploads", http.Dir(uploadDirPath))

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
		api.GET("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/login", authHandler.Login)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/me", authHandler.Me)
	}

	// Контактная форма и подписка (публичные, с rate limit)
	publicForms := api.Group("/")
	publicForms.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		publicForms.POST("/contact", contactHandler.Contact)
		publicForms.POST("/newsletter", contactHandler.Newsletter)
	}

	registerContentRoutes(api, "/projects", projectHandler, cfg, tokenManager)
	registerContentRoutes(api, "/ai-sectors", aiSectorHandler, cfg, tokenManager)

	// Генерация статического сайта (только администратор)
	generate := api.Group("/generate")
	generate.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireRole(models.RoleAdmin))
	{
		generate.POST("", generateHandler.Generate)
	}

	return r
}

// registerContentRoutes подключает одинаковый набор маршрутов для проектов
// и AI-кейсов. Чтение публичное, запись для администратора и редактора,
// удаление только для администратора.
func registerContentRoutes(api *gin.RouterGroup, prefix string, h *handlers.ContentHandler, cfg *config.Config, tokenManager *service.TokenManager) {
	public := api.Group(prefix)
	public.Use(middleware.OptionalAuth(tokenManager))
	{
		public.GET("", h.List)
		public.GET("/:id", middleware.UUIDValidator("id"), h.Get)
	}

	if cfg.Env == "development" {
		debug := api.Group(prefix)
		debug.GET("/debug/all", h.DebugAll)
	}

	editors := api.Group(prefix)
	editors.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
	{
		editors.POST("", h.Create)
		editors.POST("/upload", h.UploadImages)
		editors.PUT("/reorder", h.Reorder)
		editors.PUT("/:id", middleware.UUIDValidator("id"), h.Update)
	}

	admin := api.Group(prefix)
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/:id", middleware.UUIDValidator("id"), h.Delete)
	}
}
