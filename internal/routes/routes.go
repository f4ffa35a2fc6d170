package routes

import (
	"net/http"

	"creatorhub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
		appHandlers.CreatorApprovalHandler.RegisterRoutes(api)
		appHandlers.ContestHandler.RegisterRoutes(api)
		appHandlers.ContestApprovalHandler.RegisterRoutes(api)
		appHandlers.VideoHandler.RegisterRoutes(api)
		appHandlers.LeaderboardHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}
}
