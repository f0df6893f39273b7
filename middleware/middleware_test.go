package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caseflow/database"
	"caseflow/models"
	"caseflow/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers struct {
	users map[string]*models.User
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, database.ErrNotFound
}

func (s *stubUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, database.ErrNotFound
}

func (s *stubUsers) Create(ctx context.Context, u *models.User) error { return nil }

func (s *stubUsers) UpdateSetDocument(ctx context.Context, id string, fields bson.M) error {
	return nil
}

type stubFirebase struct {
	uid string
}

func (f stubFirebase) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "firebase-token" {
		return &auth.Token{UID: f.uid}, nil
	}
	return nil, errors.New("invalid")
}

func guardedRouter(g *AuthGuard) *gin.Engine {
	r := gin.New()
	r.Use(g.Middleware())
	r.GET("/api/requests", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "provider": c.GetString("authProvider")})
	})
	return r
}

func issue(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, userID+"@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestAuthGuard_ValidToken(t *testing.T) {
	token := issue(t, "u1")
	users := &stubUsers{users: map[string]*models.User{"u1": {ID: "u1", TokenHash: utils.HashToken(token)}}}
	r := guardedRouter(&AuthGuard{Users: users, LoginURL: "/login"})

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"userID":"u1"`) {
		t.Fatalf("expected 200 for u1, got %d %s", w.Code, w.Body.String())
	}
}

func TestAuthGuard_CookieToken(t *testing.T) {
	token := issue(t, "u1")
	users := &stubUsers{users: map[string]*models.User{"u1": {ID: "u1", TokenHash: utils.HashToken(token)}}}
	r := guardedRouter(&AuthGuard{Users: users})

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected cookie session to be accepted, got %d", w.Code)
	}
}

func TestAuthGuard_RevokedToken(t *testing.T) {
	token := issue(t, "u1")
	users := &stubUsers{users: map[string]*models.User{"u1": {ID: "u1", TokenHash: ""}}}
	r := guardedRouter(&AuthGuard{Users: users})

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", w.Code)
	}
}

func TestAuthGuard_BrowserRedirectsToLogin(t *testing.T) {
	r := guardedRouter(&AuthGuard{Users: &stubUsers{}, LoginURL: "/login"})

	req := httptest.NewRequest(http.MethodGet, "/api/requests?x=1", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?next=%2Fapi%2Frequests%3Fx%3D1" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestAuthGuard_APIGets401(t *testing.T) {
	r := guardedRouter(&AuthGuard{Users: &stubUsers{}, LoginURL: "/login"})
	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthGuard_FirebaseFallback(t *testing.T) {
	r := guardedRouter(&AuthGuard{Users: &stubUsers{}, Firebase: stubFirebase{uid: "fb-1"}})
	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	req.Header.Set("Authorization", "Bearer firebase-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"provider":"firebase"`) {
		t.Fatalf("expected firebase session, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware("s3cret"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for header, want := range map[string]int{
		"":              http.StatusUnauthorized,
		"Bearer wrong":  http.StatusUnauthorized,
		"Bearer s3cret": http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("header %q: got %d, want %d", header, w.Code, want)
		}
	}
}

func TestAdminAuthMiddleware_DisabledWithoutToken(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(""), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when admin token unset, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other clients should not be limited, got %d", w.Code)
	}
}

func TestRateLimiterStoreEvictsIdleClients(t *testing.T) {
	store := newRateLimiterStore(10)
	now := time.Now()
	store.nowFunc = func() time.Time { return now }

	store.getLimiter("198.51.100.1")
	store.getLimiter("198.51.100.2")

	now = now.Add(limiterIdleTTL / 2)
	store.getLimiter("198.51.100.2")

	now = now.Add(limiterIdleTTL)
	store.getLimiter("198.51.100.3")

	if len(store.limiters) != 1 {
		t.Fatalf("expected idle clients to be evicted, have %d entries", len(store.limiters))
	}
	if _, ok := store.limiters["198.51.100.3"]; !ok {
		t.Fatalf("active client missing")
	}
}
