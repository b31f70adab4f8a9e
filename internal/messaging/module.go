// Package messaging provides the WhatsApp and email dispatch bounded context module.
package messaging

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "propboost_backend/internal/http"
	"propboost_backend/internal/messaging/domain"
	"propboost_backend/internal/messaging/handler"
	"propboost_backend/internal/messaging/ports"
	"propboost_backend/internal/messaging/repository"
	"propboost_backend/internal/messaging/service"
	"propboost_backend/internal/providers"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/validator"
)

// Module is the messaging bounded context module implementing http.Module.
type Module struct {
	whatsapp *handler.Handler
	email    *handler.Handler
	service  *service.Service
}

// NewModule creates the messaging module with all its dependencies.
func NewModule(
	pool *pgxpool.Pool,
	leads ports.LeadReader,
	messenger ports.Messenger,
	whatsapp providers.WhatsAppSender,
	email providers.EmailSender,
	recorder ports.AuditRecorder,
	val *validator.Validator,
	log *logger.Logger,
	m *metrics.Metrics,
) (*Module, error) {
	if err := val.RegisterOneOf("messagechannel", domain.Channels...); err != nil {
		return nil, err
	}

	dispatchers := map[string]ports.Dispatcher{
		domain.ChannelWhatsApp: service.WhatsAppDispatcher(whatsapp),
		domain.ChannelEmail:    service.EmailDispatcher(email),
	}
	svc := service.New(repository.New(pool), leads, messenger, dispatchers, recorder, log, m)

	return &Module{
		whatsapp: handler.New(svc, val, domain.ChannelWhatsApp),
		email:    handler.New(svc, val, domain.ChannelEmail),
		service:  svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "messaging"
}

// Service returns the messaging service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the per-channel routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.whatsapp.RegisterRoutes(ctx.Protected.Group("/" + domain.ChannelWhatsApp))
	m.email.RegisterRoutes(ctx.Protected.Group("/" + domain.ChannelEmail))
}

var _ apphttp.Module = (*Module)(nil)
