package handlers

import (
	"net/http"

	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ContestApprovalHandler is the administrative review surface for contests.
type ContestApprovalHandler struct {
	*BaseHandler
	approvalService *services.ApprovalService
	contestService  *services.ContestService
}

func NewContestApprovalHandler(
	base *BaseHandler,
	approvalService *services.ApprovalService,
	contestService *services.ContestService,
) *ContestApprovalHandler {
	return &ContestApprovalHandler{
		BaseHandler:     base,
		approvalService: approvalService,
		contestService:  contestService,
	}
}

func (h *ContestApprovalHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/contest-approval")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.List)
		admin.POST("", h.ApplyAction)
	}
}

// List is the review queue: the matching set reduced to each owner's newest
// contest, paginated in memory like the creator list.
func (h *ContestApprovalHandler) List(c *gin.Context) {
	var req dto.ListContestsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	if req.Status == "" {
		req.Status = string(models.ContestStatusPending)
	}
	req.Page, req.Limit = ParsePagination(c)

	list, err := h.contestService.ListConsolidated(req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"contests":   list.Contests,
		"pagination": list.Pagination,
	})
}

func (h *ContestApprovalHandler) ApplyAction(c *gin.Context) {
	var req dto.ContestApprovalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.approvalService.ApplyContestAction(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contest status updated",
	})
}
