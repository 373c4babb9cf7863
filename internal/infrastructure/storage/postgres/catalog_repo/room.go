package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/domain"
	"posada/internal/domain/catalogs/room"
	"posada/internal/infrastructure/storage/postgres"
)

const roomTable = "cat_rooms"

// Compile-time check.
var _ room.Repository = (*RoomRepo)(nil)

// RoomRepo implements room.Repository.
type RoomRepo struct {
	*BaseCatalogRepo[room.Room]
}

// NewRoomRepo creates a new room repository.
func NewRoomRepo(txManager *postgres.TxManager) *RoomRepo {
	return &RoomRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[room.Room](
			txManager,
			roomTable,
			postgres.ExtractDBColumns[room.Room](),
		),
	}
}

// List retrieves rooms with filtering and pagination.
func (r *RoomRepo) List(ctx context.Context, filter room.ListFilter) (domain.ListResult[*room.Room], error) {
	result := domain.ListResult[*room.Room]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}
	if filter.RoomTypeID != nil {
		q = q.Where(squirrel.Eq{"room_type_id": *filter.RoomTypeID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy, "number ASC")
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
