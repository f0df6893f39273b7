package handlers

import (
	"net/http"

	"caseflow/middleware"
	"caseflow/models"
	"caseflow/services/user"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler covers signup, login, logout and the current session.
type AuthHandler struct {
	Users        user.UserService
	SecureCookie bool
}

func (h *AuthHandler) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.SecureCookie, true)
}

func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var reg models.UserRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	resp, err := h.Users.RegisterUser(c.Request.Context(), reg)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	h.setSession(c, resp.Token, 0)
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler accepts an email or a username. The token is returned in the
// body and also set as the session cookie for browser clients.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	resp, err := h.Users.AuthenticateUser(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	h.setSession(c, resp.Token, 0)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	// Firebase sessions are owned by Firebase; only the cookie is cleared.
	if c.GetString("authProvider") != "firebase" {
		if err := h.Users.RevokeUserAuthToken(c.Request.Context(), userID); err != nil {
			respondError(c, err, "Failed to log out")
			return
		}
	}
	h.setSession(c, "", -1)
	getLogger(c).Info("User logged out", zap.String("userID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler returns the user behind the current session.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	if c.GetString("authProvider") == "firebase" {
		c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": c.GetString("userID")}, "authProvider": "firebase"})
		return
	}
	u, err := h.Users.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "authProvider": c.GetString("authProvider")})
}

// ResetPasswordHandler handles POST /api/admin/users/:id/password.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.Users.AdminResetPassword(c.Request.Context(), c.Param("id"), body.Password); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset", "id": c.Param("id")})
}
