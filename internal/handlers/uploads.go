package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hawbir/minbar/backend/internal/storage"
)

type UploadHandler struct {
	uploader      storage.Uploader
	maxUploadSize int64
}

func NewUploadHandler(uploader storage.Uploader, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{uploader: uploader, maxUploadSize: maxUploadSize}
}

// Upload streams a multipart file into object storage and returns its URL
// (PROTECTED). The ?folder= query selects the target prefix: "articles"
// (default) or "avatars".
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	if fileHeader.Size > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	folder := c.DefaultQuery("folder", "articles")
	if folder != "articles" && folder != "avatars" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder must be articles or avatars"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), folder, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
