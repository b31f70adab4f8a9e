package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propboost_backend/internal/analytics/service"
	"propboost_backend/internal/analytics/transport"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the read-only analytics endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Dashboard)
}

func (h *Handler) RegisterAnalyticsRoutes(rg *gin.RouterGroup) {
	rg.GET("/leaderboard", h.Leaderboard)
	rg.GET("/source-performance", h.SourcePerformance)
	rg.GET("/score-distribution", h.ScoreDistribution)
}

func (h *Handler) RegisterVoiceRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.VoiceStats)
	rg.GET("/call-logs", h.CallLogs)
}

// GET /api/v1/dashboard/stats
func (h *Handler) Dashboard(c *gin.Context) {
	result, err := h.svc.Dashboard(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/analytics/leaderboard
func (h *Handler) Leaderboard(c *gin.Context) {
	result, err := h.svc.Leaderboard(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/analytics/source-performance
func (h *Handler) SourcePerformance(c *gin.Context) {
	result, err := h.svc.SourcePerformance(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/analytics/score-distribution
func (h *Handler) ScoreDistribution(c *gin.Context) {
	result, err := h.svc.ScoreDistribution(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/voice/stats
func (h *Handler) VoiceStats(c *gin.Context) {
	result, err := h.svc.VoiceStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/voice/call-logs
func (h *Handler) CallLogs(c *gin.Context) {
	var req transport.CallLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	result, err := h.svc.CallLogs(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
