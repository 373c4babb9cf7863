package booking_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/domain"
	"posada/internal/domain/reservation"
	"posada/internal/infrastructure/storage/postgres"
)

const reservationTable = "reservations"

var _ reservation.Repository = (*ReservationRepo)(nil)

// ReservationRepo implements reservation.Repository.
type ReservationRepo struct {
	*BaseBookingRepo[reservation.Reservation]
}

// NewReservationRepo creates a new reservation repository.
func NewReservationRepo(txManager *postgres.TxManager) *ReservationRepo {
	return &ReservationRepo{
		BaseBookingRepo: NewBaseBookingRepo[reservation.Reservation](
			txManager,
			reservationTable,
			postgres.ExtractDBColumns[reservation.Reservation](),
		),
	}
}

// List retrieves reservations with filtering and pagination.
func (r *ReservationRepo) List(ctx context.Context, filter reservation.ListFilter) (domain.ListResult[*reservation.Reservation], error) {
	result := domain.ListResult[*reservation.Reservation]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"placeholder_name": pattern},
			squirrel.ILike{"notes": pattern},
		})
	}
	if filter.State != nil {
		q = q.Where(squirrel.Eq{"state": *filter.State})
	}
	if filter.GuestID != nil {
		q = q.Where(squirrel.Eq{"guest_id": *filter.GuestID})
	}
	if filter.CompanyID != nil {
		q = q.Where(squirrel.Eq{"company_id": *filter.CompanyID})
	}
	if filter.CheckInFrom != nil {
		q = q.Where(squirrel.GtOrEq{"check_in": *filter.CheckInFrom})
	}
	if filter.CheckInTo != nil {
		q = q.Where(squirrel.LtOrEq{"check_in": *filter.CheckInTo})
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy, "check_in ASC")
	if err != nil {
		return result, err
	}

	items, total, err := r.queryList(ctx, q, orderBy, filter.Limit, filter.Offset)
	if err != nil {
		return result, err
	}

	result.Items = items
	result.TotalCount = total
	return result, nil
}
