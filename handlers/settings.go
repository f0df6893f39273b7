package handlers

import (
	"net/http"

	"caseflow/services/settings"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the AI credentials row to admins.
type SettingsHandler struct {
	Service settings.SettingsService
}

func (h *SettingsHandler) GetAIHandler(c *gin.Context) {
	view, err := h.Service.GetAISettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, view)
}

// SaveAIHandler upserts the row. An empty apiKey keeps the stored key.
func (h *SettingsHandler) SaveAIHandler(c *gin.Context) {
	var input settings.AISettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	view, err := h.Service.SaveAISettings(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, view)
}
