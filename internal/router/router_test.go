package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"survey-go/internal/config"
	"survey-go/internal/models"
	"survey-go/internal/pdf"
	"survey-go/internal/utils"
	"survey-go/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitValidator()

	db, err := models.Open(config.DatabaseConfig{Driver: "sqlite", Path: "file:router_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatal(err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Admin:   config.AdminConfig{Username: "admin", Password: "s3cret"},
		CORS:    config.CORSConfig{Origins: []string{"http://localhost:3001"}},
		Storage: config.StorageConfig{UploadDir: t.TempDir(), MaxUploadMB: 10},
	}

	r, err := SetupRouter(Dependencies{
		Config:     cfg,
		JWTManager: utils.NewJWTManager("test-secret", "HS256", time.Hour),
		Logger:     logger,
		DB:         db,
		Generator:  pdf.NewRodGenerator(config.BrowserConfig{}, limiter.NewLocalLimiter(3), logger),
	})
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	return r
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	var health struct {
		RenderSlots limiter.Usage `json:"render_slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil || health.RenderSlots.Max != 3 {
		t.Errorf("health should report render slots, got %s", w.Body.String())
	}

	for _, path := range []string{"/api/admin/me", "/api/admin/surveys"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s without token status = %d", path, w.Code)
		}
	}

	login := func(password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"`+password+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := login("wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d", w.Code)
	}

	w = login("s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body %s", w.Code, w.Body.String())
	}
	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Data.AccessToken == "" {
		t.Fatalf("no token in %s", w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"admin"`) {
		t.Errorf("me status = %d body %s", w.Code, w.Body.String())
	}
}

func TestPublicRoutesRegistered(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/surveys/UNKNOWN", http.StatusNotFound},
		{http.MethodGet, "/api/serve-file/missing.pdf", http.StatusNotFound},
		{http.MethodPost, "/api/generate-pdf", http.StatusBadRequest},
		{http.MethodPost, "/api/upload-pdf", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.status {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, w.Code, tt.status)
		}
	}
}
