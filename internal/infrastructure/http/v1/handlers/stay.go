package handlers

import (
	"github.com/gin-gonic/gin"

	"posada/internal/core/id"
	"posada/internal/domain/frontdesk"
	"posada/internal/domain/stay"
	"posada/internal/infrastructure/http/v1/dto"
	"posada/internal/infrastructure/http/v1/middleware"
)

// StayHandler serves the front desk stay endpoints: check-in, in-house
// operations, the ledgers, checkout and reopen.
type StayHandler struct {
	*BaseHandler
	service *frontdesk.Service
}

// NewStayHandler creates a new stay handler.
func NewStayHandler(base *BaseHandler, service *frontdesk.Service) *StayHandler {
	return &StayHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers stay endpoints. Check-in lives under
// reservations because that is the entity it consumes.
func (h *StayHandler) RegisterRoutes(reservations, stays *gin.RouterGroup) {
	reservations.POST("/:id/check-in", h.CheckIn)

	stays.GET("", h.List)
	stays.GET("/:id", h.Get)
	stays.GET("/:id/history", h.History)
	stays.GET("/:id/occupancies", h.ListOccupancies)
	stays.POST("/:id/room-moves", h.MoveRoom)
	stays.POST("/:id/extend", h.Extend)

	stays.GET("/:id/charges", h.ListCharges)
	stays.POST("/:id/charges", h.AddCharge)
	stays.GET("/:id/payments", h.ListPayments)
	stays.POST("/:id/payments", h.RegisterPayment)
	stays.POST("/:id/payments/:paymentId/reverse", h.ReversePayment)

	stays.POST("/:id/invoice-preview", h.InvoicePreview)
	stays.GET("/:id/overstay", h.Overstay)
	stays.POST("/:id/checkout", h.Checkout)
	stays.POST("/:id/reopen", middleware.RequireAdmin(), h.Reopen)
}

// CheckIn handles POST /reservations/:id/check-in.
func (h *StayHandler) CheckIn(c *gin.Context) {
	resID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if !h.BindJSON(c, &req) {
		return
	}

	st, err := h.service.CheckIn(c.Request.Context(), resID, req.RoomID, req.Options())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, st)
}

// Get handles GET /stays/:id.
func (h *StayHandler) Get(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	st, err := h.service.GetStay(c.Request.Context(), stayID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, st)
}

// List handles GET /stays.
func (h *StayHandler) List(c *gin.Context) {
	var req dto.StayListFilter
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := stay.ListFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.State != "" {
		st := stay.State(req.State)
		filter.State = &st
	}
	if req.RoomID != "" {
		roomID, err := id.Parse(req.RoomID)
		if err == nil {
			filter.RoomID = &roomID
		}
	}

	result, err := h.service.ListStays(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result))
}

// MoveRoom handles POST /stays/:id/room-moves.
func (h *StayHandler) MoveRoom(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.MoveRoomRequest
	if !h.BindJSON(c, &req) {
		return
	}

	occ, err := h.service.MoveRoom(c.Request.Context(), stayID, req.ToRoomID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, occ)
}

// Extend handles POST /stays/:id/extend.
func (h *StayHandler) Extend(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ExtendStayRequest
	if !h.BindJSON(c, &req) {
		return
	}

	st, err := h.service.ExtendStay(c.Request.Context(), stayID, req.NewCheckout, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, st)
}

// AddCharge handles POST /stays/:id/charges.
func (h *StayHandler) AddCharge(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AddChargeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	charge, err := h.service.AddCharge(c.Request.Context(), stayID,
		req.Kind, req.Quantity, req.UnitAmount, req.Description)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, charge)
}

// ListCharges handles GET /stays/:id/charges.
func (h *StayHandler) ListCharges(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	charges, err := h.service.ListCharges(c.Request.Context(), stayID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, charges)
}

// RegisterPayment handles POST /stays/:id/payments.
func (h *StayHandler) RegisterPayment(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.RegisterPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.service.RegisterPayment(c.Request.Context(), stayID,
		req.Amount, req.Method, req.Reference)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, payment)
}

// ListPayments handles GET /stays/:id/payments.
func (h *StayHandler) ListPayments(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), stayID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, payments)
}

// ReversePayment handles POST /stays/:id/payments/:paymentId/reverse.
func (h *StayHandler) ReversePayment(c *gin.Context) {
	paymentID, ok := h.ParseID(c, "paymentId")
	if !ok {
		return
	}

	var req dto.ReversePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	reversal, err := h.service.ReversePayment(c.Request.Context(), paymentID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, reversal)
}

// ListOccupancies handles GET /stays/:id/occupancies.
func (h *StayHandler) ListOccupancies(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	occupancies, err := h.service.ListOccupancies(c.Request.Context(), stayID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, occupancies)
}

// InvoicePreview handles POST /stays/:id/invoice-preview.
// POST because overrides arrive in the body; nothing is persisted.
func (h *StayHandler) InvoicePreview(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	// Body is optional: no overrides means a plain preview.
	var req dto.InvoicePreviewRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.service.InvoicePreview(c.Request.Context(), stayID, req.Overrides.ToOverrides())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, invoice)
}

// Overstay handles GET /stays/:id/overstay.
func (h *StayHandler) Overstay(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.OverstayStatus(c.Request.Context(), stayID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Checkout handles POST /stays/:id/checkout.
func (h *StayHandler) Checkout(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	// Body is optional: a plain checkout needs no options.
	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), stayID, req.Options())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Reopen handles POST /stays/:id/reopen.
func (h *StayHandler) Reopen(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReopenStayRequest
	if !h.BindJSON(c, &req) {
		return
	}

	st, err := h.service.Reopen(c.Request.Context(), stayID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, st)
}

// History handles GET /stays/:id/history.
func (h *StayHandler) History(c *gin.Context) {
	stayID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	events, err := h.service.History(c.Request.Context(), stayID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, events)
}
