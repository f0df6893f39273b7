package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"caseflow/handlers"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(userCalls, adminCalls *int) *gin.Engine {
	hb := &handlers.HandlerBundle{
		Auth:         &handlers.AuthHandler{},
		CaseRequests: &handlers.CaseRequestHandler{},
		Files:        &handlers.FileHandler{},
		Analysis:     &handlers.AnalysisHandler{},
		Banks:        &handlers.BankHandler{},
		Notices:      &handlers.NoticeHandler{},
		Settings:     &handlers.SettingsHandler{},
		RequireUser: func(c *gin.Context) {
			*userCalls++
			c.AbortWithStatus(http.StatusUnauthorized)
		},
		RequireAdmin: func(c *gin.Context) {
			*adminCalls++
			c.AbortWithStatus(http.StatusUnauthorized)
		},
	}
	r := gin.New()
	RegisterRoutes(r, hb, []string{"http://localhost:3000"})
	return r
}

func TestProtectedRoutesRunTheGuard(t *testing.T) {
	var userCalls, adminCalls int
	r := newTestEngine(&userCalls, &adminCalls)

	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/requests"},
		{http.MethodGet, "/api/requests/categories"},
		{http.MethodDelete, "/api/requests/abc"},
		{http.MethodPost, "/api/analysis/patterns"},
		{http.MethodPost, "/api/analysis/extract"},
		{http.MethodPost, "/api/files"},
		{http.MethodPost, "/api/notices"},
		{http.MethodPost, "/api/banks/import"},
		{http.MethodGet, "/api/auth/me"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
	if userCalls != len(cases) || adminCalls != 0 {
		t.Fatalf("unexpected guard calls: user=%d admin=%d", userCalls, adminCalls)
	}
}

func TestAdminRoutesUseAdminGuard(t *testing.T) {
	var userCalls, adminCalls int
	r := newTestEngine(&userCalls, &adminCalls)

	for _, path := range []string{"/api/admin/settings/ai", "/api/admin/users/u-1/password"} {
		method := http.MethodGet
		if path != "/api/admin/settings/ai" {
			method = http.MethodPost
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}
	if adminCalls != 2 || userCalls != 0 {
		t.Fatalf("unexpected guard calls: user=%d admin=%d", userCalls, adminCalls)
	}
}

func TestHealthIsPublic(t *testing.T) {
	var userCalls, adminCalls int
	r := newTestEngine(&userCalls, &adminCalls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	// No probe has run, so the status is unhealthy but the route answers.
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before the first probe, got %d", w.Code)
	}
	if userCalls != 0 {
		t.Fatalf("health must not run the auth guard")
	}
}
