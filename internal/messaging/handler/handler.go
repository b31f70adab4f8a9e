package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/internal/messaging/service"
	"propboost_backend/internal/messaging/transport"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidMessageID = "invalid message id"
	msgInvalidLeadID    = "invalid lead id"
)

// Handler serves one message channel.
type Handler struct {
	svc     *service.Service
	val     *validator.Validator
	channel string
}

func New(svc *service.Service, val *validator.Validator, channel string) *Handler {
	return &Handler{svc: svc, val: val, channel: channel}
}

// RegisterRoutes mounts the channel's routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id/approve", h.Approve)
	rg.PUT("/:id/send", h.Send)
	rg.GET("/lead/:leadId", h.ListForLead)
}

// POST /api/v1/{channel}/generate
func (h *Handler) Generate(c *gin.Context) {
	var req transport.GenerateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Channel = h.channel
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	msg, err := h.svc.Generate(c.Request.Context(), httpkit.ActorID(id), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, msg)
}

// GET /api/v1/{channel}/:id
func (h *Handler) Get(c *gin.Context) {
	messageID, ok := parseID(c, "id", msgInvalidMessageID)
	if !ok {
		return
	}
	msg, err := h.svc.Get(c.Request.Context(), h.channel, messageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}

// PUT /api/v1/{channel}/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	messageID, ok := parseID(c, "id", msgInvalidMessageID)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	msg, err := h.svc.Approve(c.Request.Context(), httpkit.ActorID(id), h.channel, messageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}

// PUT /api/v1/{channel}/:id/send
func (h *Handler) Send(c *gin.Context) {
	messageID, ok := parseID(c, "id", msgInvalidMessageID)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), httpkit.ActorID(id), h.channel, messageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}

// GET /api/v1/{channel}/lead/:leadId
func (h *Handler) ListForLead(c *gin.Context) {
	leadID, ok := parseID(c, "leadId", msgInvalidLeadID)
	if !ok {
		return
	}
	items, err := h.svc.ListForLead(c.Request.Context(), h.channel, leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

func parseID(c *gin.Context, param, msg string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msg, nil)
		return uuid.UUID{}, false
	}
	return parsed, true
}
