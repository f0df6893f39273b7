package routes

import (
	"net/http"
	"time"

	"caseflow/handlers"
	"caseflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login, signup and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignupHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(hb.RequireUser)
		protected.POST("/logout", hb.Auth.LogoutHandler)
		protected.GET("/me", hb.Auth.MeHandler)
	}
}

// RegisterCaseRequestRoutes registers the request form, list and notice endpoints.
func RegisterCaseRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(hb.RequireUser)
		api.GET("", hb.CaseRequests.ListHandler)
		api.POST("", hb.CaseRequests.CreateHandler)
		api.GET("/categories", hb.CaseRequests.CategoriesHandler)
		api.GET("/prefill", hb.CaseRequests.PrefillHandler)
		api.GET("/:id", hb.CaseRequests.GetHandler)
		api.PUT("/:id", hb.CaseRequests.UpdateHandler)
		api.POST("/:id/delete-intent", hb.CaseRequests.DeleteIntentHandler)
		api.DELETE("/:id", hb.CaseRequests.DeleteHandler)
		api.POST("/:id/notice", hb.Notices.FromRequestHandler)
	}
}

// RegisterDocumentRoutes registers file, analysis and notice endpoints.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	files := r.Group("/api/files")
	{
		files.Use(hb.RequireUser)
		files.POST("", hb.Files.UploadHandler)
		files.GET("/:id/url", hb.Files.URLHandler)
	}

	analysis := r.Group("/api/analysis")
	{
		analysis.Use(hb.RequireUser)
		analysis.POST("/patterns", hb.Analysis.AnalyzeHandler)
		analysis.POST("/extract", hb.Analysis.ExtractHandler)
	}

	notices := r.Group("/api/notices")
	{
		notices.Use(hb.RequireUser)
		notices.POST("", hb.Notices.GenerateHandler)
	}
}

// RegisterBankRoutes registers the bank/pattern registry endpoints.
func RegisterBankRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/banks")
	{
		api.Use(hb.RequireUser)
		api.GET("", hb.Banks.ListHandler)
		api.POST("", hb.Banks.CreateHandler)
		api.POST("/import", hb.Banks.ImportHandler)
		api.GET("/:id", hb.Banks.GetHandler)
		api.PUT("/:id", hb.Banks.UpdateHandler)
		api.DELETE("/:id", hb.Banks.DeleteHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(hb.RequireAdmin)
		adminGroup.GET("/settings/ai", hb.Settings.GetAIHandler)
		adminGroup.PUT("/settings/ai", hb.Settings.SaveAIHandler)
		adminGroup.POST("/users/:id/password", hb.Auth.ResetPasswordHandler)
	}
}

// RegisterHealthRoute reports the last dependency probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "caseflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterCaseRequestRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterBankRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
