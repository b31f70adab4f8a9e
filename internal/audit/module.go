package audit

import (
	apphttp "propboost_backend/internal/http"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the audit bounded context module implementing http.Module.
type Module struct {
	handler  *Handler
	recorder *Recorder
}

// NewModule creates the audit module. The recorder is shared with every
// context that writes to the trail.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, m *metrics.Metrics) *Module {
	repo := NewRepository(pool)
	return &Module{
		handler:  NewHandler(repo, val),
		recorder: NewRecorder(repo, log, m),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// Recorder returns the shared audit writer.
func (m *Module) Recorder() *Recorder {
	return m.recorder
}

// RegisterRoutes mounts the audit read endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/activity-logs", m.handler.ListActivity)
	ctx.Protected.GET("/compliance-audits", m.handler.ListComplianceAudits)
}

var _ apphttp.Module = (*Module)(nil)
