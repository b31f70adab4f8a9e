// Package webhook receives inbound provider callbacks.
package webhook

import (
	apphttp "propboost_backend/internal/http"
	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/validator"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	secret  string
}

// NewModule creates the webhook module.
func NewModule(reconciler CallReconciler, cfg config.VoiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(reconciler, val, log),
		secret:  cfg.GetVoiceWebhookSecret(),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts the public webhook routes (signature auth, no JWT).
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/webhooks")
	group.Use(SignatureMiddleware(m.secret))
	group.POST("/voice", m.handler.HandleVoiceWebhook)
}

var _ apphttp.Module = (*Module)(nil)
