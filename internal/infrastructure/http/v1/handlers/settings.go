package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"posada/internal/domain/settings"
	"posada/internal/infrastructure/http/v1/dto"
)

// SettingsHandler serves the property configuration.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers settings endpoints.
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.PUT("", h.Update)
}

// Get handles GET /settings. Always answers, with defaults when no row
// has been stored yet.
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cfg)
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(cfg)
	cfg.UpdatedAt = time.Now().UTC()
	if err := h.service.Update(c.Request.Context(), cfg); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cfg)
}
