package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/internal/content/service"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(authenticated bool) *gin.Engine {
	svc := service.New(nil, nil, nil, 1, logger.New("development"), nil)
	h := New(svc, validator.New())

	engine := gin.New()
	if authenticated {
		engine.Use(func(c *gin.Context) {
			c.Set(httpkit.ContextActorKey, "agent-1")
			c.Next()
		})
	}
	h.RegisterPropertyRoutes(engine.Group("/properties"))
	h.RegisterContentRoutes(engine.Group("/content"))
	return engine
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreatePropertyRequiresTitleAndLocation(t *testing.T) {
	rec := serve(newEngine(true), http.MethodPost, "/properties", `{"title":"Villa"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "validation failed") {
		t.Fatalf("expected validation failure, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateRejectsUnknownPlatform(t *testing.T) {
	body := `{"property_id":"` + uuid.NewString() + `","platforms":["tiktok"]}`
	rec := serve(newEngine(true), http.MethodPost, "/content/generate", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApproveRequiresDecision(t *testing.T) {
	rec := serve(newEngine(true), http.MethodPut, "/content/"+uuid.NewString()+"/approve", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApproveRejectsBadID(t *testing.T) {
	rec := serve(newEngine(true), http.MethodPut, "/content/nope/approve", `{"approved":true}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), msgInvalidContentID) {
		t.Fatalf("expected invalid id, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestDeletePropertyRequiresIdentity(t *testing.T) {
	rec := serve(newEngine(false), http.MethodDelete, "/properties/"+uuid.NewString(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
