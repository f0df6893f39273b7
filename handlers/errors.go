package handlers

import (
	"errors"
	"net/http"

	"caseflow/services/analysis"
	"caseflow/services/bank"
	"caseflow/services/caserequest"
	ai "caseflow/services/intelligence"
	"caseflow/services/notice"
	"caseflow/services/storage"
	"caseflow/services/user"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP statuses. Unknown errors are
// logged and reported as 500 without internal details.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, user.ErrInvalidCredentials.Error(), "")
	case errors.Is(err, caserequest.ErrRequestNotFound),
		errors.Is(err, bank.ErrBankNotFound),
		errors.Is(err, storage.ErrFileNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, caserequest.ErrConfirmationRequired):
		utils.JSONError(c, http.StatusConflict, "Deletion not confirmed", err.Error())
	case errors.Is(err, user.ErrUserExists):
		utils.JSONError(c, http.StatusConflict, "User already exists", err.Error())
	case errors.Is(err, caserequest.ErrInvalidRequestType),
		errors.Is(err, caserequest.ErrUnknownCategory),
		errors.Is(err, bank.ErrInvalidBankName),
		errors.Is(err, notice.ErrMissingSlots),
		errors.Is(err, analysis.ErrUnreadablePDF),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrMissingIdentity):
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, ai.ErrMalformedAIResponse), errors.Is(err, ai.ErrEmptyAIResponse):
		utils.JSONError(c, http.StatusBadGateway, "Could not extract fields from the documents. Please try again.", "")
	case errors.Is(err, ai.ErrAIKeyMissing), errors.Is(err, bank.ErrSheetNotConfigured):
		utils.JSONError(c, http.StatusServiceUnavailable, "Feature not configured", err.Error())
	default:
		getLogger(c).Error(fallback, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, fallback, "")
	}
}
