package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"survey-go/internal/config"
	"survey-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "HS256", time.Hour)
	adminToken, _, _ := jwtManager.GenerateToken("admin", utils.RoleAdmin)
	viewerToken, _, _ := jwtManager.GenerateToken("viewer", "viewer")

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtManager), AdminMiddleware(), func(c *gin.Context) {
		name, _ := GetUsername(c)
		c.String(http.StatusOK, name)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"non admin", "Bearer " + viewerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
		{"lowercase scheme", "bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.status == http.StatusOK && w.Body.String() != "admin" {
				t.Errorf("unexpected body %q", w.Body.String())
			}
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{
		Origins:      []string{"http://localhost:3001"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3001" {
		t.Error("allowed origin not echoed")
	}
	if w.Header().Get("Access-Control-Allow-Methods") != "GET, POST" {
		t.Errorf("methods = %q", w.Header().Get("Access-Control-Allow-Methods"))
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
	if w.Body.String() != "pong" {
		t.Error("request should still be served")
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(LoggerMiddleware(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for path, level := range map[string]string{"/missing": `"level":"warning"`, "/boom": `"level":"error"`} {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		out := buf.String()
		if !strings.Contains(out, level) {
			t.Errorf("%s: expected %s in %s", path, level, out)
		}
		if !strings.Contains(out, `"request_id":"req-1"`) || w.Header().Get(RequestIDHeader) != "req-1" {
			t.Errorf("%s: request id not propagated", path)
		}
	}
}
