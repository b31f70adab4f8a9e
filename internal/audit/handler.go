package audit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidEntityID  = "invalid entity_id"
)

// ListRequest is the query accepted by both listings.
type ListRequest struct {
	EntityType string `form:"entity_type" validate:"omitempty,oneof=lead property content whatsapp email"`
	EntityID   string `form:"entity_id" validate:"omitempty,uuid"`
	Action     string `form:"action" validate:"omitempty,max=64"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

type ActivityLogResponse struct {
	ID         uuid.UUID      `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Actor      string         `json:"actor"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ComplianceAuditResponse struct {
	ID                  uuid.UUID `json:"id"`
	EntityType          string    `json:"entity_type"`
	EntityID            uuid.UUID `json:"entity_id"`
	OriginalText        string    `json:"original_text"`
	Flags               []string  `json:"flags"`
	IsCompliant         bool      `json:"is_compliant"`
	AIDisclaimerPresent bool      `json:"ai_disclaimer_present"`
	ReviewedBy          string    `json:"reviewed_by"`
	CreatedAt           time.Time `json:"created_at"`
}

// Handler serves the read side of the audit trail.
type Handler struct {
	store Store
	val   *validator.Validator
}

func NewHandler(store Store, val *validator.Validator) *Handler {
	return &Handler{store: store, val: val}
}

// ListActivity returns activity entries, newest first.
// GET /api/v1/activity-logs
func (h *Handler) ListActivity(c *gin.Context) {
	req, entityID, ok := h.bindList(c)
	if !ok {
		return
	}

	items, err := h.store.ListActivity(c.Request.Context(), ActivityFilter{
		EntityType: req.EntityType,
		EntityID:   entityID,
		Action:     req.Action,
		Limit:      req.Limit,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]ActivityLogResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ActivityLogResponse(item))
	}
	httpkit.OK(c, out)
}

// ListComplianceAudits returns compliance audits, newest first.
// GET /api/v1/compliance-audits
func (h *Handler) ListComplianceAudits(c *gin.Context) {
	req, entityID, ok := h.bindList(c)
	if !ok {
		return
	}

	items, err := h.store.ListComplianceAudits(c.Request.Context(), ComplianceFilter{
		EntityType: req.EntityType,
		EntityID:   entityID,
		Limit:      req.Limit,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]ComplianceAuditResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ComplianceAuditResponse{
			ID:                  item.ID,
			EntityType:          item.EntityType,
			EntityID:            item.EntityID,
			OriginalText:        item.OriginalText,
			Flags:               item.Flags,
			IsCompliant:         item.IsCompliant,
			AIDisclaimerPresent: item.DisclaimerPresent,
			ReviewedBy:          item.ReviewedBy,
			CreatedAt:           item.CreatedAt,
		})
	}
	httpkit.OK(c, out)
}

func (h *Handler) bindList(c *gin.Context) (ListRequest, *uuid.UUID, bool) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, nil, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return req, nil, false
	}
	if req.EntityID == "" {
		return req, nil, true
	}
	id, err := uuid.Parse(req.EntityID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidEntityID, nil)
		return req, nil, false
	}
	return req, &id, true
}
