package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"caseflow/models"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// DocumentAnalyzer runs the per-page bank code scan.
type DocumentAnalyzer interface {
	AnalyzeUpload(ctx context.Context, r io.Reader, name, createdBy string) (*models.AnalysisReport, error)
	AnalyzeFile(ctx context.Context, fileID string) (*models.AnalysisReport, error)
}

// FieldExtractor runs AI extraction over two stored documents.
type FieldExtractor interface {
	Extract(ctx context.Context, primaryID, contractID string) (*models.ExtractionResult, error)
}

// AnalysisHandler exposes the document analysis pipeline.
type AnalysisHandler struct {
	Analyzer       DocumentAnalyzer
	Extractor      FieldExtractor
	Files          FileStore
	MaxUploadBytes int64
}

// AnalyzeHandler handles POST /api/analysis/patterns with either a "file"
// upload or {"fileId": "..."}.
func (h *AnalysisHandler) AnalyzeHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if isJSON(c) {
		var body struct {
			FileID string `json:"fileId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		report, err := h.Analyzer.AnalyzeFile(ctx, body.FileID)
		if err != nil {
			respondError(c, err, "Failed to analyze document")
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}
	if !checkPDF(c, fh, h.MaxUploadBytes) {
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read upload", err.Error())
		return
	}
	defer f.Close()

	report, err := h.Analyzer.AnalyzeUpload(ctx, f, fh.Filename, c.GetString("userID"))
	if err != nil {
		respondError(c, err, "Failed to analyze document")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExtractHandler handles POST /api/analysis/extract with "primary" and
// "contract" uploads, or {"primaryFileId", "contractFileId"}.
func (h *AnalysisHandler) ExtractHandler(c *gin.Context) {
	ctx := c.Request.Context()
	var primaryID, contractID string

	if isJSON(c) {
		var body struct {
			PrimaryFileID  string `json:"primaryFileId" binding:"required"`
			ContractFileID string `json:"contractFileId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		primaryID, contractID = body.PrimaryFileID, body.ContractFileID
	} else {
		// Both uploads are checked before either is stored.
		primary, ok := h.pdfField(c, "primary")
		if !ok {
			return
		}
		contract, ok := h.pdfField(c, "contract")
		if !ok {
			return
		}
		if primaryID, ok = h.store(c, primary); !ok {
			return
		}
		if contractID, ok = h.store(c, contract); !ok {
			return
		}
	}

	result, err := h.Extractor.Extract(ctx, primaryID, contractID)
	if err != nil {
		respondError(c, err, "Failed to extract fields")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) pdfField(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, field+" file not provided", err.Error())
		return nil, false
	}
	if !checkPDF(c, fh, h.MaxUploadBytes) {
		return nil, false
	}
	return fh, true
}

func (h *AnalysisHandler) store(c *gin.Context, fh *multipart.FileHeader) (string, bool) {
	file, err := saveFormFile(c, h.Files, fh)
	if err != nil {
		respondError(c, err, "Failed to store upload")
		return "", false
	}
	return file.ID, true
}

func saveFormFile(c *gin.Context, files FileStore, fh *multipart.FileHeader) (*models.StoredFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return files.Save(c.Request.Context(), f, fh.Size, fh.Filename, contentType(fh), c.GetString("userID"))
}
