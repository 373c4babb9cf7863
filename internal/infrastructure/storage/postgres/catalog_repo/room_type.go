package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/domain"
	"posada/internal/domain/catalogs/room"
	"posada/internal/infrastructure/storage/postgres"
)

const roomTypeTable = "cat_room_types"

var _ room.TypeRepository = (*RoomTypeRepo)(nil)

// RoomTypeRepo implements room.TypeRepository.
type RoomTypeRepo struct {
	*BaseCatalogRepo[room.RoomType]
}

// NewRoomTypeRepo creates a new room type repository.
func NewRoomTypeRepo(txManager *postgres.TxManager) *RoomTypeRepo {
	return &RoomTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[room.RoomType](
			txManager,
			roomTypeTable,
			postgres.ExtractDBColumns[room.RoomType](),
		),
	}
}

// List retrieves room types with filtering and pagination.
func (r *RoomTypeRepo) List(ctx context.Context, filter room.ListFilter) (domain.ListResult[*room.RoomType], error) {
	result := domain.ListResult[*room.RoomType]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy, "name ASC")
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
