package handlers

import (
	"github.com/gin-gonic/gin"

	"posada/internal/core/id"
	"posada/internal/domain/catalogs/room"
	"posada/internal/infrastructure/http/v1/dto"
)

// RoomHandler serves the room and room type catalogs.
type RoomHandler struct {
	*BaseHandler
	service *room.Service
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(base *BaseHandler, service *room.Service) *RoomHandler {
	return &RoomHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers room and room type endpoints.
func (h *RoomHandler) RegisterRoutes(rooms, roomTypes *gin.RouterGroup) {
	rooms.POST("", h.CreateRoom)
	rooms.GET("", h.ListRooms)
	rooms.GET("/:id", h.GetRoom)
	rooms.PUT("/:id", h.UpdateRoom)
	rooms.PUT("/:id/status", h.SetRoomStatus)

	roomTypes.POST("", h.CreateRoomType)
	roomTypes.GET("", h.ListRoomTypes)
	roomTypes.GET("/:id", h.GetRoomType)
	roomTypes.PUT("/:id", h.UpdateRoomType)
}

// CreateRoom handles POST /rooms.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rm := req.ToEntity()
	if err := h.service.CreateRoom(c.Request.Context(), rm); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, rm.ID)
}

// GetRoom handles GET /rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rm, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rm)
}

// UpdateRoom handles PUT /rooms/:id.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rm, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(rm)
	if err := h.service.UpdateRoom(c.Request.Context(), rm); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rm)
}

// SetRoomStatus handles PUT /rooms/:id/status.
func (h *RoomHandler) SetRoomStatus(c *gin.Context) {
	roomID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetRoomStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), roomID, req.Status); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}

// ListRooms handles GET /rooms.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var req dto.RoomListFilter
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := room.ListFilter{
		Search:  req.Search,
		OrderBy: req.OrderBy,
		Limit:   req.Limit,
		Offset:  req.Offset,
	}
	if req.Status != "" {
		status := room.OperationalStatus(req.Status)
		filter.Status = &status
	}
	if req.RoomTypeID != "" {
		typeID, err := id.Parse(req.RoomTypeID)
		if err == nil {
			filter.RoomTypeID = &typeID
		}
	}

	result, err := h.service.ListRooms(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result))
}

// CreateRoomType handles POST /room-types.
func (h *RoomHandler) CreateRoomType(c *gin.Context) {
	var req dto.CreateRoomTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t := req.ToEntity()
	if err := h.service.CreateRoomType(c.Request.Context(), t); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, t.ID)
}

// GetRoomType handles GET /room-types/:id.
func (h *RoomHandler) GetRoomType(c *gin.Context) {
	typeID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetRoomType(c.Request.Context(), typeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, t)
}

// UpdateRoomType handles PUT /room-types/:id.
func (h *RoomHandler) UpdateRoomType(c *gin.Context) {
	typeID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.service.GetRoomType(c.Request.Context(), typeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(t)
	if err := h.service.UpdateRoomType(c.Request.Context(), t); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, t)
}

// ListRoomTypes handles GET /room-types.
func (h *RoomHandler) ListRoomTypes(c *gin.Context) {
	var req dto.RoomListFilter
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	result, err := h.service.ListRoomTypes(c.Request.Context(), room.ListFilter{
		Search:  req.Search,
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
