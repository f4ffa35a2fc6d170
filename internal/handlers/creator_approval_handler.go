package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"creatorhub_backend/internal/middleware"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Fields the PUT surface refuses to change.
var immutableVerificationFields = []string{"userId", "createdAt", "verificationId"}

type CreatorApprovalHandler struct {
	*BaseHandler
	creatorService  *services.CreatorService
	approvalService *services.ApprovalService
	uploadService   *services.UploadService
}

func NewCreatorApprovalHandler(
	base *BaseHandler,
	creatorService *services.CreatorService,
	approvalService *services.ApprovalService,
	uploadService *services.UploadService,
) *CreatorApprovalHandler {
	return &CreatorApprovalHandler{
		BaseHandler:     base,
		creatorService:  creatorService,
		approvalService: approvalService,
		uploadService:   uploadService,
	}
}

func (h *CreatorApprovalHandler) RegisterRoutes(r *gin.RouterGroup) {
	creators := r.Group("/creator-approval")
	creators.Use(middleware.AuthMiddleware())
	{
		creators.POST("", h.Post)
		creators.GET("", h.Get)
		creators.PUT("", h.Put)
		creators.POST("/submit", h.Submit)
	}
}

// Post dispatches on content type: multipart requests are file uploads, JSON
// requests are administrative status actions.
func (h *CreatorApprovalHandler) Post(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.uploadAsset(c)
		return
	}
	h.applyAction(c)
}

func (h *CreatorApprovalHandler) uploadAsset(c *gin.Context) {
	var req dto.UploadAssetRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid upload fields: "+err.Error()))
		return
	}
	if !h.validate(c, &req) {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	url, err := h.uploadService.UploadVerificationAsset(c.Request.Context(), file, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

func (h *CreatorApprovalHandler) applyAction(c *gin.Context) {
	if role := h.GetUserRole(c); role != string(models.UserRoleAdmin) {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Only administrators can review verifications"))
		return
	}

	var req dto.ApprovalActionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.approvalService.ApplyCreatorAction(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification status updated",
	})
}

// Get returns one consolidated record when id is present, otherwise a
// paginated consolidated list.
func (h *CreatorApprovalHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		creator, err := h.creatorService.GetConsolidated(id)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"creator": creator,
		})
		return
	}

	var req dto.ListCreatorsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.Limit = ParsePagination(c)

	list, err := h.creatorService.List(req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"creators":   list.Creators,
		"pagination": list.Pagination,
	})
}

// Put partially updates a verification record. The raw body is decoded first
// so attempts to touch immutable fields are detected even though the typed
// request ignores them.
func (h *CreatorApprovalHandler) Put(c *gin.Context) {
	verificationID := c.Query("id")
	if verificationID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Query parameter id is required"))
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	var forbidden []string
	for _, field := range immutableVerificationFields {
		if _, present := raw[field]; present {
			forbidden = append(forbidden, field)
		}
	}

	payload, _ := json.Marshal(raw)
	var req dto.UpdateVerificationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	if !h.validate(c, &req) {
		return
	}

	updated, err := h.creatorService.UpdateVerification(
		verificationID,
		userID,
		models.UserRole(h.GetUserRole(c)),
		&req,
		forbidden,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"verification": updated,
	})
}

// Submit creates a new pending verification for the authenticated creator.
func (h *CreatorApprovalHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	req.UserID = userID

	verification, err := h.creatorService.SubmitVerification(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"verification": verification,
	})
}
