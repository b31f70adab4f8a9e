// Package analytics provides the dashboard and reporting module.
package analytics

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"propboost_backend/internal/analytics/handler"
	"propboost_backend/internal/analytics/repository"
	"propboost_backend/internal/analytics/service"
	apphttp "propboost_backend/internal/http"
	"propboost_backend/platform/validator"
)

// Module is the analytics module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := service.New(repository.New(pool))
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes mounts the dashboard, analytics and voice reporting routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterDashboardRoutes(ctx.Protected.Group("/dashboard"))
	m.handler.RegisterAnalyticsRoutes(ctx.Protected.Group("/analytics"))
	m.handler.RegisterVoiceRoutes(ctx.Protected.Group("/voice"))
}

var _ apphttp.Module = (*Module)(nil)
