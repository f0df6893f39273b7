package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	userRepo "caseflow/database/repository/user"
	"caseflow/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCookie carries the token for browser requests.
const SessionCookie = "session"

// FirebaseVerifier checks Firebase ID tokens; *auth.Client satisfies it.
type FirebaseVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthGuard resolves the session on every protected route.
type AuthGuard struct {
	Users     userRepo.UserRepository
	AuthCache *redis.Client
	// Firebase is optional; when set, tokens that are not our JWTs are
	// checked as Firebase ID tokens.
	Firebase FirebaseVerifier
	LoginURL string
}

// Middleware rejects requests without a valid session. Browser navigations
// are redirected to the login page, API calls get 401.
func (g *AuthGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			g.deny(c, "Insufficient authorization")
			return
		}

		if userID, ok := g.checkJWT(c, tokenString); ok {
			c.Set("userID", userID)
			c.Set("authProvider", "jwt")
			c.Next()
			return
		}

		if g.Firebase != nil {
			tok, err := g.Firebase.VerifyIDToken(c.Request.Context(), tokenString)
			if err == nil {
				c.Set("userID", tok.UID)
				c.Set("authProvider", "firebase")
				c.Next()
				return
			}
		}
		g.deny(c, "Insufficient authorization")
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// checkJWT validates the signature and that the token is the user's current
// one, using the auth cache before the database.
func (g *AuthGuard) checkJWT(c *gin.Context, tokenString string) (string, bool) {
	logger := utils.GetLogger()
	ctx := c.Request.Context()

	userID, err := utils.ExtractIDFromToken(tokenString)
	if err != nil {
		return "", false
	}
	computedHash := utils.HashToken(tokenString)
	cacheKey := utils.AuthCachePrefix + userID

	if g.AuthCache != nil {
		cachedHash, err := g.AuthCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash == computedHash {
				_ = g.AuthCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				return userID, true
			}
			return "", false
		} else if err != redis.Nil {
			logger.Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
		}
	}

	usr, err := g.Users.GetByID(ctx, userID)
	if err != nil || usr == nil || usr.TokenHash == "" || usr.TokenHash != computedHash {
		return "", false
	}
	if g.AuthCache != nil {
		_ = g.AuthCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
	}
	return userID, true
}

func (g *AuthGuard) deny(c *gin.Context, message string) {
	if wantsHTML(c) && g.LoginURL != "" {
		target := g.LoginURL
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	utils.JSONError(c, http.StatusUnauthorized, message, "")
}

// wantsHTML reports whether the request is a browser navigation.
func wantsHTML(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet && strings.Contains(c.GetHeader("Accept"), "text/html")
}
