package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers and the guards that sit in front
// of them so routes can be registered in one place.
type HandlerBundle struct {
	Auth         *AuthHandler
	CaseRequests *CaseRequestHandler
	Files        *FileHandler
	Analysis     *AnalysisHandler
	Banks        *BankHandler
	Notices      *NoticeHandler
	Settings     *SettingsHandler

	// RequireUser guards every /api route except login and signup.
	RequireUser gin.HandlerFunc
	// RequireAdmin guards the /api/admin group.
	RequireAdmin gin.HandlerFunc
}
