package api

import (
	"github.com/concave-dev/crpt/internal/api/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	// API version prefix
	v1 := router.Group("/api/v1")

	v1.GET("/health", handlers.HandleHealth(s.version, s.startTime))
	v1.GET("/queue", handlers.HandleQueue(s.dispatcher, s.gate))

	documents := v1.Group("/documents")
	documents.Use(s.ingressLimitMiddleware())
	{
		documents.POST("", handlers.HandleSubmitDocument(s.dispatcher, RequestIDHeader, s.resultTimeout))
	}
}
