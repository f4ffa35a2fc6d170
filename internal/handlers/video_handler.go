package handlers

import (
	"net/http"

	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	*BaseHandler
	videoService       *services.VideoService
	leaderboardService *services.LeaderboardService
}

func NewVideoHandler(base *BaseHandler, videoService *services.VideoService, leaderboardService *services.LeaderboardService) *VideoHandler {
	return &VideoHandler{
		BaseHandler:        base,
		videoService:       videoService,
		leaderboardService: leaderboardService,
	}
}

func (h *VideoHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/videos")
	{
		public.GET("", h.List)
	}

	authed := r.Group("/videos")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/:videoId", h.Get)
		authed.POST("/:videoId/purchase", h.Purchase)
		authed.GET("/purchases/my", h.GetMyPurchases)
	}

	creators := r.Group("/videos")
	creators.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCreator))
	{
		creators.POST("", h.Create)
	}

	// Payment provider callback, authenticated by the opaque checkout ref.
	r.POST("/checkout/:checkoutRef/confirm", h.ConfirmPurchase)
}

func (h *VideoHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateVideoRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.UserID = userID

	video, err := h.videoService.CreateVideo(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"video":   video,
	})
}

func (h *VideoHandler) Get(c *gin.Context) {
	userID, _ := c.Get("userID")
	requesterID, _ := userID.(string)

	video, err := h.videoService.GetVideo(c.Param("videoId"), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"video":   video,
	})
}

func (h *VideoHandler) List(c *gin.Context) {
	var req dto.ListVideosRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	list, err := h.videoService.List(req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"videos":     list.Videos,
		"pagination": list.Pagination,
	})
}

func (h *VideoHandler) Purchase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	purchase, err := h.videoService.Purchase(c.Param("videoId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"purchase": purchase,
	})
}

func (h *VideoHandler) ConfirmPurchase(c *gin.Context) {
	checkoutRef := c.Param("checkoutRef")
	if checkoutRef == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Checkout reference is required"))
		return
	}

	purchase, err := h.videoService.ConfirmPurchase(checkoutRef)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// A settled sale changes the ranking.
	h.leaderboardService.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"purchase": purchase,
	})
}

func (h *VideoHandler) GetMyPurchases(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	purchases, err := h.videoService.GetBuyerPurchases(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"purchases": purchases,
	})
}
