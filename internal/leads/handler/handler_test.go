package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/internal/leads/service"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(authenticated bool) *gin.Engine {
	svc := service.New(nil, nil, nil, nil, logger.New("development"), nil)
	h := New(svc, validator.New())

	engine := gin.New()
	if authenticated {
		engine.Use(func(c *gin.Context) {
			c.Set(httpkit.ContextActorKey, "agent-1")
			c.Next()
		})
	}
	h.RegisterRoutes(engine.Group("/leads"))
	h.RegisterPipelineRoutes(engine.Group("/pipeline"))
	h.RegisterVoiceRoutes(engine.Group("/voice"))
	return engine
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestInvalidLeadIDIsRejected(t *testing.T) {
	rec := serve(newEngine(true), http.MethodGet, "/leads/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateRequiresName(t *testing.T) {
	rec := serve(newEngine(true), http.MethodPost, "/leads", `{"email":"a@b.test"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "validation failed") {
		t.Fatalf("expected validation failure, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateRejectsNegativeDealValue(t *testing.T) {
	rec := serve(newEngine(true), http.MethodPost, "/leads", `{"name":"Sara","estimated_deal_value":-5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStageUpdateRejectsOutOfRangeProbability(t *testing.T) {
	rec := serve(newEngine(true), http.MethodPut, "/pipeline/"+uuid.NewString()+"/stage", `{"stage":"won","probability":140}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTriggerCallRequiresIdentity(t *testing.T) {
	rec := serve(newEngine(false), http.MethodPost, "/voice/trigger-call", `{"lead_id":"`+uuid.NewString()+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
