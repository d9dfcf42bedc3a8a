package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workbridge/internal/handlers"
)

// Setup registers every API route under /api/v1 plus the health probe.
func Setup(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	h.Auth.RegisterRoutes(api)
	h.Job.RegisterRoutes(api)
	h.Bid.RegisterRoutes(api)
	h.Rating.RegisterRoutes(api)
	h.Notification.RegisterRoutes(api)
}
