// Package leads provides the lead orchestration bounded context module.
package leads

import (
	apphttp "propboost_backend/internal/http"
	"propboost_backend/internal/leads/domain"
	"propboost_backend/internal/leads/handler"
	"propboost_backend/internal/leads/ports"
	"propboost_backend/internal/leads/repository"
	"propboost_backend/internal/leads/service"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, scorer ports.LeadScorer, caller ports.VoiceCaller, recorder ports.ActivityRecorder, val *validator.Validator, log *logger.Logger, m *metrics.Metrics) (*Module, error) {
	if err := val.RegisterOneOf("pipelinestage", domain.PipelineStages...); err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	svc := service.New(repo, scorer, caller, recorder, log, m)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapters that read lead data.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// SetVoiceCallScheduler wires background execution of automatic calls.
func (m *Module) SetVoiceCallScheduler(scheduler ports.VoiceCallScheduler) {
	m.service.SetVoiceCallScheduler(scheduler)
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
	m.handler.RegisterPipelineRoutes(ctx.Protected.Group("/pipeline"))
	m.handler.RegisterVoiceRoutes(ctx.Protected.Group("/voice"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
