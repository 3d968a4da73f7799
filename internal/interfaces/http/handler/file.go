package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paulmaker/office-mgmt/internal/application/document"
)

// FileHandler exposes presigned URL endpoints for file storage
type FileHandler struct {
	BaseHandler
	fileService *document.FileService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(fileService *document.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// RegisterRoutes registers file routes
func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.POST("/upload-url", h.RequestUpload)
	files.POST("/download-url", h.RequestDownload)
	files.DELETE("", h.Delete)
}

// UploadURLRequest asks for a presigned upload URL
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

// DownloadURLRequest asks for a presigned download URL for a stored key
type DownloadURLRequest struct {
	Key string `json:"key" binding:"required"`
}

// DeleteFileRequest identifies the object to delete
type DeleteFileRequest struct {
	Key string `json:"key" binding:"required"`
}

// RequestUpload returns a presigned PUT URL scoped to the caller's entity
func (h *FileHandler) RequestUpload(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.fileService.RequestUpload(c.Request.Context(), getPrincipal(c), req.Filename, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RequestDownload returns a presigned GET URL for an existing object
func (h *FileHandler) RequestDownload(c *gin.Context) {
	var req DownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.fileService.RequestDownload(c.Request.Context(), getPrincipal(c), req.Key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a stored object
func (h *FileHandler) Delete(c *gin.Context) {
	var req DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), getPrincipal(c), req.Key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
