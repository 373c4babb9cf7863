package handlers

import (
	"github.com/gin-gonic/gin"

	"posada/internal/core/id"
	"posada/internal/domain/reservation"
	"posada/internal/infrastructure/http/v1/dto"
)

// ReservationHandler serves the reservation lifecycle endpoints.
type ReservationHandler struct {
	*BaseHandler
	service *reservation.Service
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(base *BaseHandler, service *reservation.Service) *ReservationHandler {
	return &ReservationHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers reservation endpoints.
func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/confirm", h.Confirm)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/no-show", h.MarkNoShow)
	rg.GET("/:id/history", h.History)
}

// Create handles POST /reservations.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), res); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, res.ID)
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), resID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}

// Update handles PUT /reservations/:id.
func (h *ReservationHandler) Update(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReservationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Get(c.Request.Context(), resID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(res)
	if err := h.service.Update(c.Request.Context(), res); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}

// List handles GET /reservations.
func (h *ReservationHandler) List(c *gin.Context) {
	var req dto.ReservationListFilter
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := reservation.ListFilter{
		Search:      req.Search,
		CheckInFrom: req.CheckInFrom,
		CheckInTo:   req.CheckInTo,
		OrderBy:     req.OrderBy,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if req.State != "" {
		st := reservation.State(req.State)
		filter.State = &st
	}
	if req.GuestID != "" {
		guestID, err := id.Parse(req.GuestID)
		if err == nil {
			filter.GuestID = &guestID
		}
	}
	if req.CompanyID != "" {
		companyID, err := id.Parse(req.CompanyID)
		if err == nil {
			filter.CompanyID = &companyID
		}
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result))
}

// Confirm handles POST /reservations/:id/confirm.
func (h *ReservationHandler) Confirm(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Confirm(c.Request.Context(), resID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}

// Cancel handles POST /reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CancelReservationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), resID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}

// MarkNoShow handles POST /reservations/:id/no-show.
func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.MarkNoShow(c.Request.Context(), resID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}

// History handles GET /reservations/:id/history.
func (h *ReservationHandler) History(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	events, err := h.service.History(c.Request.Context(), resID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, events)
}
