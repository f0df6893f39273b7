package handlers

import (
	"net/http"

	"caseflow/models"
	"caseflow/services/bank"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BankHandler manages the bank/pattern registry.
type BankHandler struct {
	Service bank.BankService
}

func (h *BankHandler) ListHandler(c *gin.Context) {
	banks, err := h.Service.ListBanks(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list banks")
		return
	}
	c.JSON(http.StatusOK, banks)
}

func (h *BankHandler) GetHandler(c *gin.Context) {
	b, err := h.Service.GetBank(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch bank")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BankHandler) CreateHandler(c *gin.Context) {
	var input models.BankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	b, err := h.Service.CreateBank(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create bank")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateHandler overwrites every field of the bank, codes included.
func (h *BankHandler) UpdateHandler(c *gin.Context) {
	var input models.BankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	b, err := h.Service.UpdateBank(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, "Failed to update bank")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BankHandler) DeleteHandler(c *gin.Context) {
	if err := h.Service.DeleteBank(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete bank")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank deleted", "id": c.Param("id")})
}

// ImportHandler handles POST /api/banks/import.
func (h *BankHandler) ImportHandler(c *gin.Context) {
	summary, err := h.Service.ImportFromSheet(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to import banks")
		return
	}
	getLogger(c).Info("Bank sheet imported",
		zap.Int("imported", summary.Imported), zap.Int("skipped", summary.Skipped))
	c.JSON(http.StatusOK, summary)
}
