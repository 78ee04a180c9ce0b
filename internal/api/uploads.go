package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

// maxUploadSize bounds a single image upload.
const maxUploadSize = 10 << 20 // 10 MiB

// UploadHandler serves image uploads
type UploadHandler struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store *storage.Store) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logging.GetLogger().With(zap.String("component", "uploads")),
	}
}

// Upload stores a multipart image and returns its public URL
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		c.Error(NewError(http.StatusServiceUnavailable, "uploads are disabled"))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.Error(BadRequest("image file is required"))
		return
	}
	if header.Size > maxUploadSize {
		c.Error(BadRequest("file too large"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()

	objectName, url, err := h.store.UploadImage(c.Request.Context(), header.Filename, file, header.Size)
	if err != nil {
		c.Error(BadRequest(err.Error()))
		return
	}

	h.logger.Info("Image uploaded", zap.String("object", objectName))
	Respond(c, http.StatusCreated, "image uploaded", gin.H{
		"object": objectName,
		"url":    url,
	})
}

// Delete removes a previously uploaded image by object name
func (h *UploadHandler) Delete(c *gin.Context) {
	if h.store == nil {
		c.Error(NewError(http.StatusServiceUnavailable, "uploads are disabled"))
		return
	}

	object := strings.TrimPrefix(c.Param("object"), "/")
	if object == "" {
		c.Error(BadRequest("object name is required"))
		return
	}

	if err := h.store.DeleteImage(c.Request.Context(), object); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Image deleted", zap.String("object", object))
	Respond(c, http.StatusOK, "image deleted", nil)
}
