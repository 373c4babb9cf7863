package handlers

import (
	"github.com/gin-gonic/gin"

	"posada/internal/domain/catalogs/guest"
	"posada/internal/infrastructure/http/v1/dto"
)

// GuestHandler serves the guest and corporate account catalogs.
type GuestHandler struct {
	*BaseHandler
	service *guest.Service
}

// NewGuestHandler creates a new guest handler.
func NewGuestHandler(base *BaseHandler, service *guest.Service) *GuestHandler {
	return &GuestHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers guest and company endpoints.
func (h *GuestHandler) RegisterRoutes(guests, companies *gin.RouterGroup) {
	guests.POST("", h.CreateGuest)
	guests.GET("", h.ListGuests)
	guests.GET("/:id", h.GetGuest)
	guests.PUT("/:id", h.UpdateGuest)

	companies.POST("", h.CreateCompany)
	companies.GET("", h.ListCompanies)
	companies.GET("/:id", h.GetCompany)
	companies.PUT("/:id", h.UpdateCompany)
}

// CreateGuest handles POST /guests.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req dto.CreateGuestRequest
	if !h.BindJSON(c, &req) {
		return
	}

	g := req.ToEntity()
	if err := h.service.CreateGuest(c.Request.Context(), g); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, g.ID)
}

// GetGuest handles GET /guests/:id.
func (h *GuestHandler) GetGuest(c *gin.Context) {
	guestID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	g, err := h.service.GetGuest(c.Request.Context(), guestID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, g)
}

// UpdateGuest handles PUT /guests/:id.
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	guestID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateGuestRequest
	if !h.BindJSON(c, &req) {
		return
	}

	g, err := h.service.GetGuest(c.Request.Context(), guestID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(g)
	if err := h.service.UpdateGuest(c.Request.Context(), g); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, g)
}

// ListGuests handles GET /guests.
func (h *GuestHandler) ListGuests(c *gin.Context) {
	var req dto.PageRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	result, err := h.service.ListGuests(c.Request.Context(), guest.ListFilter{
		Search:  c.Query("search"),
		OrderBy: req.OrderBy,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result))
}

// CreateCompany handles POST /companies.
func (h *GuestHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company := req.ToEntity()
	if err := h.service.CreateCompany(c.Request.Context(), company); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, company.ID)
}

// GetCompany handles GET /companies/:id.
func (h *GuestHandler) GetCompany(c *gin.Context) {
	companyID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, company)
}

// UpdateCompany handles PUT /companies/:id.
func (h *GuestHandler) UpdateCompany(c *gin.Context) {
	companyID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(company)
	if err := h.service.UpdateCompany(c.Request.Context(), company); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, company)
}

// ListCompanies handles GET /companies.
func (h *GuestHandler) ListCompanies(c *gin.Context) {
	var req dto.PageRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	result, err := h.service.ListCompanies(c.Request.Context(), guest.ListFilter{
		Search:  c.Query("search"),
		OrderBy: req.OrderBy,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result))
}
