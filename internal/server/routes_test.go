package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/app"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Storage.Driver = "memory"

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestRoutes_UnknownAPIRouteReturns404(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/does-not-exist", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404, got Content-Type %s", ct)
	}
}

func TestRoutes_PositionLifecycleThroughRouter(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	payload := `{"symbol":"PKN","quantity":50,"purchase_price":62.50,"current_price":68.00,"purchase_date":"2025-06-02T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/api/positions", strings.NewReader(payload))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for create, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("POST", "/api/reports/generate", nil)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for report, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"total_value":3400`) {
		t.Errorf("expected report total 3400, got: %s", w.Body.String())
	}
}

func TestRoutes_SettingsEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/settings", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"frequency":"daily"`) {
		t.Errorf("expected default daily frequency, got: %s", w.Body.String())
	}
}
