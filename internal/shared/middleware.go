package shared

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func MetricsMiddleware(metrics *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections()
		defer metrics.DecrementActiveConnections()

		c.Next()

		metrics.RecordRequest(
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

func LoggingMiddleware(logger *AppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info(c.Request.Context(), "request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", GetClientIP(c)),
		)
	}
}

func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *AppMetrics, logger *AppLogger, rateLimiter *RateLimiter) {
	router.Use(otelgin.Middleware(serviceName))

	if logger != nil {
		router.Use(LoggingMiddleware(logger))
	}

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}

	if rateLimiter != nil {
		router.Use(rateLimiter.RateLimitMiddleware())
	}
}
