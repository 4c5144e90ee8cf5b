package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/auth"
	"github.com/social-blog-api/internal/config"
	"github.com/social-blog-api/internal/service"
	"github.com/social-blog-api/pkg/logger"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, verifier *auth.Verifier, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(identityMiddleware(verifier, log))

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	userHandler := NewUserHandler(services, log)
	uploadHandler := NewUploadHandler(services, cfg, log)
	adminHandler := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// Uploaded images
	if cfg.Upload.Dir != "" && cfg.Upload.URLPrefix != "" {
		router.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)
	}

	// API v1
	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.POST("", requireAuth(), articleHandler.Create)
			articles.GET("/:id", articleHandler.Get)
			articles.PUT("/:id", requireAuth(), articleHandler.Update)
			articles.DELETE("/:id", requireAuth(), articleHandler.Delete)
			articles.GET("/:id/like", articleHandler.LikeStatus)
			articles.POST("/:id/like", requireAuth(), articleHandler.ToggleLike)
			articles.POST("/:id/comments", requireAuth(), articleHandler.AddComment)
		}

		users := v1.Group("/users")
		{
			users.GET("/search", userHandler.Search)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", requireAuth(), userHandler.Update)
			users.GET("/:id/follow-status", userHandler.FollowStatus)
			users.POST("/:id/follow", requireAuth(), userHandler.ToggleFollow)
			users.GET("/:id/followers", userHandler.Followers)
			users.GET("/:id/following", userHandler.Following)
		}

		v1.POST("/uploads", requireAuth(), uploadHandler.Upload)

		admin := v1.Group("/admin", requireAuth())
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/verify", adminHandler.SetVerified)
			admin.PUT("/users/:id/role", adminHandler.SetRole)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   logger.ServiceName,
	})
}

// HealthChecker reports on the backing store
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// ReadinessCheck reports database reachability and pool usage
func ReadinessCheck(db HealthChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		stats := db.Stats()
		pool := gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		}

		if err := db.HealthCheck(ctx); err != nil {
			log.Warn().Err(err).Msg("Readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": pool})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "database": pool})
	}
}

// corsMiddleware handles CORS for the configured origins
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
