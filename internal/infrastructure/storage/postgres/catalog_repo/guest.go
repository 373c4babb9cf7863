package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/domain"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/infrastructure/storage/postgres"
)

const guestTable = "cat_guests"

var _ guest.Repository = (*GuestRepo)(nil)

// GuestRepo implements guest.Repository.
type GuestRepo struct {
	*BaseCatalogRepo[guest.Guest]
}

// NewGuestRepo creates a new guest repository.
func NewGuestRepo(txManager *postgres.TxManager) *GuestRepo {
	return &GuestRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[guest.Guest](
			txManager,
			guestTable,
			postgres.ExtractDBColumns[guest.Guest](),
		),
	}
}

// List retrieves guests with filtering and pagination.
func (r *GuestRepo) List(ctx context.Context, filter guest.ListFilter) (domain.ListResult[*guest.Guest], error) {
	result := domain.ListResult[*guest.Guest]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"document_number": pattern},
		})
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy, "last_name ASC")
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
