package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dmvas/shop-catalog/internal/config"
	"github.com/dmvas/shop-catalog/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	setupRoutes(router,
		handler.NewProductHandler(nil, nil, 0, false),
		handler.NewCatalogHandler(nil, false),
		handler.NewUploadHandler(nil, 0, false),
		"")
	return router
}

func TestUnmatchedRouteReturnsJSONNotFound(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Not Found" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestBuildPhotoStoreDisk(t *testing.T) {
	cfg := &config.StorageConfig{
		Backend:   "disk",
		UploadDir: filepath.Join(t.TempDir(), "uploads"),
	}

	store, dir, err := buildPhotoStore(cfg)
	if err != nil {
		t.Fatalf("buildPhotoStore returned error: %v", err)
	}
	if store == nil {
		t.Fatal("expected a photo store")
	}
	if dir != cfg.UploadDir {
		t.Fatalf("expected static dir %q, got %q", cfg.UploadDir, dir)
	}
}

func TestRecoveryHandlerGatesMessage(t *testing.T) {
	for _, tc := range []struct {
		name       string
		expose     bool
		wantDetail bool
	}{
		{"development exposes message", true, true},
		{"production hides message", false, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(recoveryHandler(tc.expose))
			router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != "Internal Server Error" {
				t.Fatalf("unexpected error field: %s", rec.Body.String())
			}
			_, hasMessage := body["message"]
			if hasMessage != tc.wantDetail {
				t.Fatalf("message presence = %v, want %v", hasMessage, tc.wantDetail)
			}
		})
	}
}
