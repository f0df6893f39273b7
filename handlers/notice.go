package handlers

import (
	"context"
	"fmt"
	"net/http"

	"caseflow/models"
	"caseflow/services/notice"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// RequestFetcher loads a stored case request.
type RequestFetcher interface {
	GetRequest(ctx context.Context, id string) (*models.CaseRequest, error)
}

// NoticeHandler renders legal notices as PDF downloads.
type NoticeHandler struct {
	Requests RequestFetcher
}

// GenerateHandler handles POST /api/notices with every slot in the body.
func (h *NoticeHandler) GenerateHandler(c *gin.Context) {
	var data notice.NoticeData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	h.send(c, data)
}

// FromRequestHandler handles POST /api/requests/:id/notice. Debtor slots come
// from the record, payment slots from the body.
func (h *NoticeHandler) FromRequestHandler(c *gin.Context) {
	var payment notice.PaymentDetails
	if err := c.ShouldBindJSON(&payment); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	req, err := h.Requests.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch request")
		return
	}
	h.send(c, notice.FromCaseRequest(req, payment))
}

func (h *NoticeHandler) send(c *gin.Context, data notice.NoticeData) {
	// Render to memory first so a failure can still answer with JSON.
	pdf, err := notice.RenderBytes(data)
	if err != nil {
		respondError(c, err, "Failed to generate notice")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", notice.Filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
