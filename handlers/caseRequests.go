package handlers

import (
	"fmt"
	"io"
	"net/http"

	"caseflow/models"
	"caseflow/services/caserequest"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// CaseRequestHandler serves the request form and list endpoints.
type CaseRequestHandler struct {
	Service        caserequest.CaseRequestService
	MaxUploadBytes int64
}

func NewCaseRequestHandler(svc caserequest.CaseRequestService, maxUploadBytes int64) *CaseRequestHandler {
	return &CaseRequestHandler{Service: svc, MaxUploadBytes: maxUploadBytes}
}

// bindRequest reads the form fields and, for multipart bodies, the files of
// every category.
func (h *CaseRequestHandler) bindRequest(c *gin.Context) (models.CaseRequestInput, []caserequest.Upload, bool) {
	var input models.CaseRequestInput
	if err := c.ShouldBind(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return input, nil, false
	}
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return input, nil, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return input, nil, false
	}
	var uploads []caserequest.Upload
	for _, cat := range models.AllFileCategories {
		for _, fh := range form.File[string(cat)] {
			fh := fh
			if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
				utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large",
					fmt.Sprintf("%s exceeds %d bytes", fh.Filename, h.MaxUploadBytes))
				return input, nil, false
			}
			uploads = append(uploads, caserequest.Upload{
				Category:    cat,
				Name:        fh.Filename,
				ContentType: contentType(fh),
				Size:        fh.Size,
				Open:        func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
	}
	return input, uploads, true
}

// CreateHandler handles POST /api/requests.
func (h *CaseRequestHandler) CreateHandler(c *gin.Context) {
	input, uploads, ok := h.bindRequest(c)
	if !ok {
		return
	}
	req, err := h.Service.CreateRequest(c.Request.Context(), input, uploads, c.GetString("userID"))
	if err != nil {
		respondError(c, err, "Failed to create request")
		return
	}
	c.JSON(http.StatusCreated, req)
}

// UpdateHandler handles PUT /api/requests/:id. New files are appended.
func (h *CaseRequestHandler) UpdateHandler(c *gin.Context) {
	input, uploads, ok := h.bindRequest(c)
	if !ok {
		return
	}
	req, err := h.Service.UpdateRequest(c.Request.Context(), c.Param("id"), input, uploads)
	if err != nil {
		respondError(c, err, "Failed to update request")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *CaseRequestHandler) GetHandler(c *gin.Context) {
	req, err := h.Service.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch request")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *CaseRequestHandler) ListHandler(c *gin.Context) {
	records, err := h.Service.ListRequests(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list requests")
		return
	}
	c.JSON(http.StatusOK, records)
}

// DeleteIntentHandler handles POST /api/requests/:id/delete-intent.
func (h *CaseRequestHandler) DeleteIntentHandler(c *gin.Context) {
	intent, err := h.Service.RequestDeletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to start deletion")
		return
	}
	c.JSON(http.StatusOK, intent)
}

// DeleteHandler handles DELETE /api/requests/:id?confirm=<token>.
func (h *CaseRequestHandler) DeleteHandler(c *gin.Context) {
	if err := h.Service.ConfirmDeletion(c.Request.Context(), c.Param("id"), c.Query("confirm")); err != nil {
		respondError(c, err, "Failed to delete request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted", "id": c.Param("id")})
}

// PrefillHandler decodes analysis query parameters into an initial form state.
func (h *CaseRequestHandler) PrefillHandler(c *gin.Context) {
	c.JSON(http.StatusOK, caserequest.PrefillFromQuery(c.Request.URL.Query()))
}

// CategoriesHandler lists the upload sections shown for ?type=.
func (h *CaseRequestHandler) CategoriesHandler(c *gin.Context) {
	t := models.RequestType(c.Query("type"))
	if !t.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", caserequest.ErrInvalidRequestType.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": t, "categories": models.CategoriesFor(t)})
}
