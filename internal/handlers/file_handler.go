package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"creatorhub_backend/internal/storage"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored assets when the local storage backend is active.
// Object-store backends serve files through their own public URLs.
type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		store:       store,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/*path", h.ServeFile)
	r.HEAD("/files/*path", h.CheckFileExists)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	path := c.Param("path")

	reader, err := h.store.Get(c.Request.Context(), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path := c.Param("path")

	exists, err := h.store.Exists(c.Request.Context(), path)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}
