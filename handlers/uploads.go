package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// checkPDF rejects uploads that are not .pdf files or exceed maxBytes.
func checkPDF(c *gin.Context, fh *multipart.FileHeader, maxBytes int64) bool {
	if maxBytes > 0 && fh.Size > maxBytes {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large",
			fmt.Sprintf("%s exceeds %d bytes", fh.Filename, maxBytes))
		return false
	}
	if strings.ToLower(filepath.Ext(fh.Filename)) != ".pdf" {
		utils.JSONError(c, http.StatusBadRequest, "Only PDF files are allowed", fh.Filename)
		return false
	}
	return true
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func isJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}
