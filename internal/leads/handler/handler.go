package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/internal/leads/service"
	"propboost_backend/internal/leads/transport"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead id"
)

// Handler handles HTTP requests for leads, the pipeline and voice calls.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the lead routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/rescore", h.Rescore)
}

// RegisterPipelineRoutes mounts the pipeline routes.
func (h *Handler) RegisterPipelineRoutes(rg *gin.RouterGroup) {
	rg.PUT("/:id/stage", h.UpdateStage)
	rg.GET("/stats", h.PipelineStats)
}

// RegisterVoiceRoutes mounts the manual voice-call route.
func (h *Handler) RegisterVoiceRoutes(rg *gin.RouterGroup) {
	rg.POST("/trigger-call", h.TriggerCall)
}

// Create scores and stores a new lead.
// POST /api/v1/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), httpkit.ActorID(id), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, lead)
}

// List returns leads filtered by stage, score range and source.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	leads, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, leads)
}

// GET /api/v1/leads/:id
func (h *Handler) GetByID(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// PUT /api/v1/leads/:id
func (h *Handler) Update(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}
	var req transport.UpdateLeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), httpkit.ActorID(id), leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// DELETE /api/v1/leads/:id
func (h *Handler) Delete(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), httpkit.ActorID(id), leadID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "lead deleted"})
}

// POST /api/v1/leads/:id/rescore
func (h *Handler) Rescore(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	lead, err := h.svc.Rescore(c.Request.Context(), httpkit.ActorID(id), leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// PUT /api/v1/pipeline/:id/stage
func (h *Handler) UpdateStage(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}
	var req transport.UpdateStageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	lead, err := h.svc.UpdateStage(c.Request.Context(), httpkit.ActorID(id), leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// GET /api/v1/pipeline/stats
func (h *Handler) PipelineStats(c *gin.Context) {
	stats, err := h.svc.PipelineStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, stats)
}

// POST /api/v1/voice/trigger-call
func (h *Handler) TriggerCall(c *gin.Context) {
	var req transport.TriggerCallRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.TriggerCall(c.Request.Context(), httpkit.ActorID(id), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return false
	}
	return true
}

func parseLeadID(c *gin.Context) (uuid.UUID, bool) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return uuid.UUID{}, false
	}
	return leadID, true
}
