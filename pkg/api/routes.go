package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accounts/internal/adapter/http/handler"
	"accounts/internal/shared"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
}

func SetupRouter(handlers HandlersConfig, metrics *shared.AppMetrics, logger *shared.AppLogger, rateLimiter *shared.RateLimiter) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	shared.SetupGinMiddleware(router, "accounts", metrics, logger, rateLimiter)

	router.Use(gin.Recovery())

	router.GET("/health", healthHandler)

	setupUserRoutes(router, handlers.UserHandler)

	return router
}

// SetupRouterForTests builds a bare router without telemetry middleware.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler)

	setupUserRoutes(router, handlers.UserHandler)

	return router
}

func setupUserRoutes(router *gin.Engine, userHandler *handler.UserHandler) {
	if userHandler == nil {
		return
	}

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("/:email", userHandler.GetUserByEmail)
		users.DELETE("/:email", userHandler.DeleteUserByEmail)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
