// Package content provides the properties and content pipeline bounded context module.
package content

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"propboost_backend/internal/content/handler"
	"propboost_backend/internal/content/ports"
	"propboost_backend/internal/content/repository"
	"propboost_backend/internal/content/service"
	apphttp "propboost_backend/internal/http"
	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/validator"
)

// Module is the content bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the content module with all its dependencies.
func NewModule(pool *pgxpool.Pool, copywriter ports.Copywriter, recorder ports.AuditRecorder, cfg config.PipelineConfig, val *validator.Validator, log *logger.Logger, m *metrics.Metrics) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, copywriter, recorder, cfg.GetContentParallelism(), log, m)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "content"
}

// Service returns the content service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts property and content routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPropertyRoutes(ctx.Protected.Group("/properties"))
	m.handler.RegisterContentRoutes(ctx.Protected.Group("/content"))
}

var _ apphttp.Module = (*Module)(nil)
