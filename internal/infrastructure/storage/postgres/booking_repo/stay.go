package booking_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/core/id"
	"posada/internal/domain"
	"posada/internal/domain/stay"
	"posada/internal/infrastructure/storage/postgres"
)

const stayTable = "stays"

var _ stay.StayRepository = (*StayRepo)(nil)

// StayRepo implements stay.StayRepository. The stays table carries a unique
// constraint on reservation_id, so a second check-in for the same
// reservation surfaces as a state conflict.
type StayRepo struct {
	*BaseBookingRepo[stay.Stay]
}

// NewStayRepo creates a new stay repository.
func NewStayRepo(txManager *postgres.TxManager) *StayRepo {
	return &StayRepo{
		BaseBookingRepo: NewBaseBookingRepo[stay.Stay](
			txManager,
			stayTable,
			postgres.ExtractDBColumns[stay.Stay](),
		),
	}
}

// LockByID fetches the stay with FOR UPDATE, serializing concurrent
// checkout and reopen attempts on the same row.
func (r *StayRepo) LockByID(ctx context.Context, stayID id.ID) (*stay.Stay, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": stayID}).
		Suffix("FOR UPDATE")

	return r.FindOne(ctx, q)
}

// GetByReservation returns the stay created for a reservation's check-in.
func (r *StayRepo) GetByReservation(ctx context.Context, reservationID id.ID) (*stay.Stay, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// List retrieves stays with filtering and pagination.
func (r *StayRepo) List(ctx context.Context, filter stay.ListFilter) (domain.ListResult[*stay.Stay], error) {
	result := domain.ListResult[*stay.Stay]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.State != nil {
		q = q.Where(squirrel.Eq{"state": *filter.State})
	}
	if filter.RoomID != nil {
		// Match stays whose current occupancy interval is in the room.
		q = q.Where(squirrel.Expr(
			"id IN (SELECT stay_id FROM room_occupancies WHERE room_id = ? AND to_time IS NULL)",
			*filter.RoomID,
		))
	}

	items, total, err := r.queryList(ctx, q, "created_at DESC", filter.Limit, filter.Offset)
	if err != nil {
		return result, err
	}

	result.Items = items
	result.TotalCount = total
	return result, nil
}
