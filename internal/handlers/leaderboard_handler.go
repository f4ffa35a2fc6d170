package handlers

import (
	"net/http"

	"creatorhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	*BaseHandler
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(base *BaseHandler, leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler:        base,
		leaderboardService: leaderboardService,
	}
}

func (h *LeaderboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/leaderboard", h.Get)
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 10)

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": entries,
	})
}
