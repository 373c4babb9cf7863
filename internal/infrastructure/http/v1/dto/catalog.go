package dto

import (
	"posada/internal/core/id"
	"posada/internal/core/types"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/domain/catalogs/room"
)

// --- Room Types ---

// CreateRoomTypeRequest is the request body for creating a room type.
type CreateRoomTypeRequest struct {
	Name            string      `json:"name" binding:"required"`
	BaseNightlyRate types.Money `json:"baseNightlyRate" binding:"required"`
	Capacity        int         `json:"capacity" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRoomTypeRequest) ToEntity() *room.RoomType {
	return room.NewRoomType(r.Name, r.BaseNightlyRate, r.Capacity)
}

// UpdateRoomTypeRequest is the request body for updating a room type.
type UpdateRoomTypeRequest struct {
	Name            string      `json:"name" binding:"required"`
	BaseNightlyRate types.Money `json:"baseNightlyRate" binding:"required"`
	Capacity        int         `json:"capacity" binding:"required,min=1"`
	Version         int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateRoomTypeRequest) ApplyTo(t *room.RoomType) {
	t.Name = r.Name
	t.BaseNightlyRate = r.BaseNightlyRate
	t.Capacity = r.Capacity
	t.Version = r.Version
}

// --- Rooms ---

// CreateRoomRequest is the request body for creating a room.
type CreateRoomRequest struct {
	Number     string `json:"number" binding:"required"`
	RoomTypeID id.ID  `json:"roomTypeId" binding:"required"`
	Floor      int    `json:"floor"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRoomRequest) ToEntity() *room.Room {
	return room.NewRoom(r.Number, r.RoomTypeID, r.Floor)
}

// UpdateRoomRequest is the request body for updating a room.
type UpdateRoomRequest struct {
	Number     string `json:"number" binding:"required"`
	RoomTypeID id.ID  `json:"roomTypeId" binding:"required"`
	Floor      int    `json:"floor"`
	Version    int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateRoomRequest) ApplyTo(rm *room.Room) {
	rm.Number = r.Number
	rm.RoomTypeID = r.RoomTypeID
	rm.Floor = r.Floor
	rm.Version = r.Version
}

// SetRoomStatusRequest changes a room's operational status.
type SetRoomStatusRequest struct {
	Status room.OperationalStatus `json:"status" binding:"required"`
}

// RoomListFilter contains query parameters for room listings.
type RoomListFilter struct {
	PageRequest
	Search     string `form:"search"`
	RoomTypeID string `form:"roomTypeId"`
	Status     string `form:"status"`
}

// --- Guests ---

// CreateGuestRequest is the request body for creating a guest.
type CreateGuestRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber" binding:"required"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateGuestRequest) ToEntity() *guest.Guest {
	g := guest.NewGuest(r.FirstName, r.LastName, r.DocumentType, r.DocumentNumber)
	g.Email = r.Email
	g.Phone = r.Phone
	return g
}

// UpdateGuestRequest is the request body for updating a guest.
type UpdateGuestRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber" binding:"required"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Version        int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateGuestRequest) ApplyTo(g *guest.Guest) {
	g.FirstName = r.FirstName
	g.LastName = r.LastName
	g.DocumentType = r.DocumentType
	g.DocumentNumber = r.DocumentNumber
	g.Email = r.Email
	g.Phone = r.Phone
	g.Version = r.Version
}

// --- Corporate Accounts ---

// CreateCompanyRequest is the request body for creating a corporate account.
type CreateCompanyRequest struct {
	Name  string `json:"name" binding:"required"`
	TaxID string `json:"taxId"`
	Email string `json:"email"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCompanyRequest) ToEntity() *guest.CorporateAccount {
	c := guest.NewCorporateAccount(r.Name, r.TaxID)
	c.Email = r.Email
	return c
}

// UpdateCompanyRequest is the request body for updating a corporate account.
type UpdateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"taxId"`
	Email   string `json:"email"`
	Active  bool   `json:"active"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCompanyRequest) ApplyTo(c *guest.CorporateAccount) {
	c.Name = r.Name
	c.TaxID = r.TaxID
	c.Email = r.Email
	c.Active = r.Active
	c.Version = r.Version
}
