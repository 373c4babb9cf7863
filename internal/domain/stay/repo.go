package stay

import (
	"context"

	"posada/internal/core/id"
	"posada/internal/domain"
)

// ListFilter contains filtering options for stay listings.
type ListFilter struct {
	State  *State
	RoomID *id.ID
	Limit  int
	Offset int
}

// StayRepository defines persistence for stays.
type StayRepository interface {
	Create(ctx context.Context, s *Stay) error
	Update(ctx context.Context, s *Stay) error
	GetByID(ctx context.Context, stayID id.ID) (*Stay, error)

	// LockByID fetches the stay with a row lock held for the remainder of
	// the transaction. Checkout and reopen serialize through this.
	LockByID(ctx context.Context, stayID id.ID) (*Stay, error)

	// GetByReservation returns the stay for a reservation, or a NotFound
	// error when check-in never happened.
	GetByReservation(ctx context.Context, reservationID id.ID) (*Stay, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Stay], error)
}

// OccupancyRepository defines persistence for room occupancy intervals.
type OccupancyRepository interface {
	Create(ctx context.Context, o *RoomOccupancy) error

	// Close stamps the end of an open interval.
	Close(ctx context.Context, o *RoomOccupancy) error

	// ListByStay returns all intervals of a stay ordered by From ascending.
	ListByStay(ctx context.Context, stayID id.ID) ([]*RoomOccupancy, error)
}

// ChargeRepository defines persistence for the append-only charge ledger.
type ChargeRepository interface {
	Create(ctx context.Context, c *Charge) error
	ListByStay(ctx context.Context, stayID id.ID) ([]*Charge, error)
}

// PaymentRepository defines persistence for the append-only payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, paymentID id.ID) (*Payment, error)

	// MarkReversed flags the original entry of a reversal pair. The only
	// mutation the ledger permits.
	MarkReversed(ctx context.Context, paymentID id.ID) error

	ListByStay(ctx context.Context, stayID id.ID) ([]*Payment, error)
}
