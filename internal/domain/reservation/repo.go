package reservation

import (
	"context"
	"time"

	"posada/internal/core/id"
	"posada/internal/domain"
)

// ListFilter contains filtering options for reservation listings.
type ListFilter struct {
	Search      string
	State       *State
	GuestID     *id.ID
	CompanyID   *id.ID
	CheckInFrom *time.Time
	CheckInTo   *time.Time
	OrderBy     string
	Limit       int
	Offset      int
}

// Repository defines persistence for reservations.
type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	Update(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, reservationID id.ID) (*Reservation, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Reservation], error)
}
