package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "propboost_backend/internal/http"
	"propboost_backend/platform/logger"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string        { return ":0" }
func (testConfig) GetCORSAllowAll() bool      { return false }
func (testConfig) GetCORSOrigins() []string   { return []string{"http://localhost:3000"} }
func (testConfig) GetCORSAllowCreds() bool    { return true }
func (testConfig) GetJWTAccessSecret() string { return "secret" }

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.GET("/public-ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	ctx.Protected.GET("/private-ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(health apphttp.HealthChecker) *gin.Engine {
	return New(&apphttp.App{
		Config:  testConfig{},
		Logger:  logger.New("development"),
		Health:  health,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		Modules: []apphttp.Module{pingModule{}},
	})
}

func TestHealthReportsDatabaseState(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine(pingFunc(func(context.Context) error { return nil })).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newEngine(pingFunc(func(context.Context) error { return errors.New("down") })).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestProtectedGroupRequiresToken(t *testing.T) {
	engine := newEngine(nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public-ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public route to be open, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/private-ping", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on protected route, got %d", rec.Code)
	}
}

func TestMetricsEndpointIsMounted(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "# metrics" {
		t.Fatalf("unexpected metrics response %d %q", rec.Code, rec.Body.String())
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	engine := newEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public-ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected caller request id, got %q", got)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public-ping", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}
