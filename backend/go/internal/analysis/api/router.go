package api

import (
	"github.com/gin-gonic/gin"

	"VaultMind/backend/go/pkg/httpmiddleware"
	"VaultMind/backend/go/pkg/ratelimiter"
)

// RegisterRoutes registers all the routes for the analysis service. The
// limiter bounds the analysis endpoints, which fan out into model calls.
func RegisterRoutes(router *gin.Engine, api *API, limiter ratelimiter.RateLimiter) {
	router.Use(httpmiddleware.TraceID())

	router.GET("/healthz", api.HealthHandler)

	v1 := router.Group("/api/v1")
	analysis := v1.Group("/analysis")
	analysis.Use(httpmiddleware.RateLimit(limiter))
	{
		analysis.POST("/ingest", api.IngestHandler)
		analysis.POST("/ask", api.AskHandler)
		analysis.POST("/analyze", api.AnalyzeHandler)
	}
}
