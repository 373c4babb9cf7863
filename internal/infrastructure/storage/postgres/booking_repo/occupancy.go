package booking_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/domain/stay"
	"posada/internal/infrastructure/storage/postgres"
)

const occupancyTable = "room_occupancies"

var _ stay.OccupancyRepository = (*OccupancyRepo)(nil)

// OccupancyRepo implements stay.OccupancyRepository. A partial unique index
// on (stay_id) WHERE to_time IS NULL keeps at most one interval open per
// stay.
type OccupancyRepo struct {
	*BaseBookingRepo[stay.RoomOccupancy]
}

// NewOccupancyRepo creates a new room occupancy repository.
func NewOccupancyRepo(txManager *postgres.TxManager) *OccupancyRepo {
	return &OccupancyRepo{
		BaseBookingRepo: NewBaseBookingRepo[stay.RoomOccupancy](
			txManager,
			occupancyTable,
			postgres.ExtractDBColumns[stay.RoomOccupancy](),
		),
	}
}

// Close stamps the end of an open interval. Closing twice is a conflict.
func (r *OccupancyRepo) Close(ctx context.Context, o *stay.RoomOccupancy) error {
	if o.To == nil {
		return apperror.NewValidation("occupancy close requires an end time").
			WithDetail("occupancyId", o.ID)
	}

	q := r.Builder().
		Update(occupancyTable).
		Set("to_time", *o.To).
		Where(squirrel.Eq{"id": o.ID}).
		Where("to_time IS NULL")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("close occupancy: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewStateConflict(occupancyTable, "closed", "close")
	}

	return nil
}

// ListByStay returns all intervals of a stay ordered by start ascending.
func (r *OccupancyRepo) ListByStay(ctx context.Context, stayID id.ID) ([]*stay.RoomOccupancy, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"stay_id": stayID}).
		OrderBy("from_time ASC")

	return r.findMany(ctx, q)
}
