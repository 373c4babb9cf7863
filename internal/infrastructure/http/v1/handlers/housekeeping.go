package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"posada/internal/core/apperror"
	"posada/internal/domain/frontdesk"
	"posada/internal/domain/housekeeping"
)

// HousekeepingHandler serves the cleaning backlog.
type HousekeepingHandler struct {
	*BaseHandler
	service *frontdesk.Service
}

// NewHousekeepingHandler creates a new housekeeping handler.
func NewHousekeepingHandler(base *BaseHandler, service *frontdesk.Service) *HousekeepingHandler {
	return &HousekeepingHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers housekeeping endpoints.
func (h *HousekeepingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tasks", h.ListPending)
	rg.PUT("/tasks/:id/status", h.SetStatus)
}

// ListPending handles GET /housekeeping/tasks. Accepts ?date=2026-08-26,
// defaulting to today hotel-local.
func (h *HousekeepingHandler) ListPending(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date, expected YYYY-MM-DD").
				WithDetail("date", raw))
			return
		}
		date = parsed
	}

	tasks, err := h.service.PendingCleaningTasks(c.Request.Context(), date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, tasks)
}

// SetStatus handles PUT /housekeeping/tasks/:id/status.
func (h *HousekeepingHandler) SetStatus(c *gin.Context) {
	taskID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status housekeeping.TaskStatus `json:"status" binding:"required"`
	}
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetCleaningTaskStatus(c.Request.Context(), taskID, req.Status); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}
