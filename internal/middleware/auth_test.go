package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "middleware-test-secret"

func guardedRouter(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret

	r := gin.New()
	r.GET("/guarded", AuthMiddleware(cfg), RoleMiddleware(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{UID: "u1", Role: role}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	router := guardedRouter(model.RoleStudent)

	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + tokenFor(t, model.RoleStudent), http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	router := guardedRouter(model.RoleInstructor)

	testCases := []struct {
		name string
		role model.UserRole
		want int
	}{
		{"instructor allowed", model.RoleInstructor, http.StatusOK},
		{"student forbidden", model.RoleStudent, http.StatusForbidden},
		{"admin passes every guard", model.RoleAdmin, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tc.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	router := guardedRouter(model.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/guarded?token="+tokenFor(t, model.RoleStudent), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
