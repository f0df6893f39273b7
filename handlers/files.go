package handlers

import (
	"context"
	"io"
	"net/http"

	"caseflow/models"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// FileStore is the file service surface used by handlers.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, size int64, name, contentType, createdBy string) (*models.StoredFile, error)
	URL(ctx context.Context, id string) (string, error)
}

// FileHandler uploads files and resolves download URLs.
type FileHandler struct {
	Files          FileStore
	MaxUploadBytes int64
}

// UploadHandler handles POST /api/files.
func (h *FileHandler) UploadHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}
	if !checkPDF(c, fh, h.MaxUploadBytes) {
		return
	}
	file, err := saveFormFile(c, h.Files, fh)
	if err != nil {
		respondError(c, err, "Failed to upload file")
		return
	}
	c.JSON(http.StatusCreated, file)
}

// URLHandler handles GET /api/files/:id/url.
func (h *FileHandler) URLHandler(c *gin.Context) {
	url, err := h.Files.URL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to resolve download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "downloadURL": url})
}
