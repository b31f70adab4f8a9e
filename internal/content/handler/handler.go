package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/internal/content/service"
	"propboost_backend/internal/content/transport"
	"propboost_backend/platform/httpkit"
	"propboost_backend/platform/validator"
)

const (
	msgInvalidRequest    = "invalid request"
	msgValidationFailed  = "validation failed"
	msgInvalidPropertyID = "invalid property id"
	msgInvalidContentID  = "invalid content id"
)

// Handler handles HTTP requests for properties and generated content.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPropertyRoutes mounts the property routes.
func (h *Handler) RegisterPropertyRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateProperty)
	rg.GET("", h.ListProperties)
	rg.GET("/:id", h.GetProperty)
	rg.DELETE("/:id", h.DeleteProperty)
}

// RegisterContentRoutes mounts the content pipeline routes.
func (h *Handler) RegisterContentRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
	rg.GET("/property/:propertyId", h.ListForProperty)
	rg.PUT("/:id/approve", h.Approve)
}

// POST /api/v1/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var req transport.CreatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	property, err := h.svc.CreateProperty(c.Request.Context(), httpkit.ActorID(id), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, property)
}

// GET /api/v1/properties
func (h *Handler) ListProperties(c *gin.Context) {
	result, err := h.svc.ListProperties(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	propertyID, ok := parseID(c, "id", msgInvalidPropertyID)
	if !ok {
		return
	}
	property, err := h.svc.GetProperty(c.Request.Context(), propertyID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, property)
}

// DELETE /api/v1/properties/:id
func (h *Handler) DeleteProperty(c *gin.Context) {
	propertyID, ok := parseID(c, "id", msgInvalidPropertyID)
	if !ok {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteProperty(c.Request.Context(), httpkit.ActorID(id), propertyID)) {
		return
	}
	httpkit.OK(c, gin.H{"message": "property deleted"})
}

// Generate fans out copy generation for a property.
// POST /api/v1/content/generate
func (h *Handler) Generate(c *gin.Context) {
	var req transport.GenerateContentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.GenerateContent(c.Request.Context(), httpkit.ActorID(id), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GET /api/v1/content/property/:propertyId
func (h *Handler) ListForProperty(c *gin.Context) {
	propertyID, ok := parseID(c, "propertyId", msgInvalidPropertyID)
	if !ok {
		return
	}
	var req transport.ListContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	items, err := h.svc.ListPropertyContent(c.Request.Context(), propertyID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Approve records a reviewer decision on one content item.
// PUT /api/v1/content/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	contentID, ok := parseID(c, "id", msgInvalidContentID)
	if !ok {
		return
	}
	var req transport.ApproveContentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	item, err := h.svc.ApproveContent(c.Request.Context(), httpkit.ActorID(id), contentID, *req.Approved)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, item)
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
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

func parseID(c *gin.Context, param, msg string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msg, nil)
		return uuid.UUID{}, false
	}
	return parsed, true
}
