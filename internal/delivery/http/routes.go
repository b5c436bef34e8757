package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shoplens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware(logger))
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// Unversioned path used by the chat UI
	router.POST("/search", handler.Search)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/search", handler.Search)

		products := v1.Group("/products")
		{
			products.POST("/insert", handler.InsertProducts)
		}
	}

	return router
}
