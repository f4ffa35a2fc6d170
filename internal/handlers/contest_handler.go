package handlers

import (
	"net/http"

	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContestHandler struct {
	*BaseHandler
	contestService *services.ContestService
}

func NewContestHandler(base *BaseHandler, contestService *services.ContestService) *ContestHandler {
	return &ContestHandler{
		BaseHandler:    base,
		contestService: contestService,
	}
}

func (h *ContestHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/contests")
	{
		public.GET("", h.List)
		public.GET("/active", h.GetActive)
	}

	authed := r.Group("/contests")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/:contestId", h.Get)
	}

	brands := r.Group("/contests")
	brands.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAdmin))
	{
		brands.POST("", h.Create)
		brands.GET("/my", h.GetMy)
		brands.PUT("/:contestId", h.Update)
		brands.DELETE("/:contestId", h.Delete)
		brands.POST("/:contestId/publish", h.Publish)
		brands.GET("/:contestId/applications", h.GetApplications)
		brands.GET("/:contestId/stats", h.GetStats)
		brands.PUT("/applications/:applicationId", h.ReviewApplication)
	}

	creators := r.Group("/contests")
	creators.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCreator))
	{
		creators.POST("/:contestId/applications", h.Apply)
		creators.GET("/applications/my", h.GetMyApplications)
	}
}

func (h *ContestHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.UserID = userID

	contest, err := h.contestService.CreateContest(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"contest": contest,
	})
}

func (h *ContestHandler) Get(c *gin.Context) {
	userID, _ := c.Get("userID")
	requesterID, _ := userID.(string)

	contest, err := h.contestService.GetContest(c.Param("contestId"), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"contest": contest,
	})
}

func (h *ContestHandler) List(c *gin.Context) {
	var req dto.ListContestsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.Limit = ParsePagination(c)

	list, err := h.contestService.List(req)
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

func (h *ContestHandler) GetActive(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 10)
	if limit <= 0 {
		limit = 10
	}

	contests, err := h.contestService.GetActiveContests(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"contests": contests,
		"total":    len(contests),
	})
}

func (h *ContestHandler) GetMy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	contests, err := h.contestService.GetOwnerContests(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"contests": contests,
	})
}

func (h *ContestHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.contestService.UpdateContest(c.Param("contestId"), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contest updated",
	})
}

func (h *ContestHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.contestService.DeleteContest(c.Param("contestId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contest deleted",
	})
}

func (h *ContestHandler) Publish(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.contestService.PublishContest(c.Param("contestId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contest submitted for review",
	})
}

func (h *ContestHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.UserID = userID
	req.ContestID = c.Param("contestId")

	application, err := h.contestService.CreateApplication(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"application": application,
	})
}

func (h *ContestHandler) GetApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.contestService.GetContestApplications(c.Param("contestId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": applications,
		"total":        len(applications),
	})
}

func (h *ContestHandler) GetMyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.contestService.GetCreatorApplications(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": applications,
	})
}

func (h *ContestHandler) ReviewApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.contestService.UpdateApplicationStatus(c.Param("applicationId"), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application status updated",
	})
}

func (h *ContestHandler) GetStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.contestService.GetApplicationStats(c.Param("contestId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
