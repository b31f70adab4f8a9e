package webhook

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"propboost_backend/internal/leads/transport"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/validator"
)

const (
	errInvalidRequest = "invalid request body"
	errValidation     = "validation error"
)

// CallReconciler applies a voice call outcome to its lead.
type CallReconciler interface {
	HandleCallEvent(ctx context.Context, event transport.CallEvent) (transport.CallEventResponse, error)
}

// Handler handles voice provider webhooks.
type Handler struct {
	reconciler CallReconciler
	val        *validator.Validator
	log        *logger.Logger
}

func NewHandler(reconciler CallReconciler, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{reconciler: reconciler, val: val, log: log}
}

// HandleVoiceWebhook reconciles a call event.
// POST /api/v1/webhooks/voice
func (h *Handler) HandleVoiceWebhook(c *gin.Context) {
	var payload callWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, validator.Fields(err))
		return
	}

	event := payload.toEvent()
	result, err := h.reconciler.HandleCallEvent(c.Request.Context(), event)
	if err != nil {
		h.log.Warn("voice webhook rejected", "event", event.Event, "call_id", event.CallID, "lead_id", event.LeadID, "error", err)
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
