package room

import (
	"context"

	"posada/internal/core/id"
	"posada/internal/domain"
)

// ListFilter contains filtering options for room listings.
type ListFilter struct {
	Search     string
	RoomTypeID *id.ID
	Status     *OperationalStatus
	OrderBy    string
	Limit      int
	Offset     int
}

// Repository defines persistence for rooms.
type Repository interface {
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, roomID id.ID) (*Room, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Room], error)
}

// TypeRepository defines persistence for room types.
type TypeRepository interface {
	Create(ctx context.Context, roomType *RoomType) error
	Update(ctx context.Context, roomType *RoomType) error
	GetByID(ctx context.Context, typeID id.ID) (*RoomType, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*RoomType], error)
}
