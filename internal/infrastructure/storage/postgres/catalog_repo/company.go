package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/domain"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/infrastructure/storage/postgres"
)

const companyTable = "cat_companies"

var _ guest.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implements guest.CompanyRepository.
type CompanyRepo struct {
	*BaseCatalogRepo[guest.CorporateAccount]
}

// NewCompanyRepo creates a new corporate account repository.
func NewCompanyRepo(txManager *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[guest.CorporateAccount](
			txManager,
			companyTable,
			postgres.ExtractDBColumns[guest.CorporateAccount](),
		),
	}
}

// List retrieves corporate accounts with filtering and pagination.
func (r *CompanyRepo) List(ctx context.Context, filter guest.ListFilter) (domain.ListResult[*guest.CorporateAccount], error) {
	result := domain.ListResult[*guest.CorporateAccount]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"tax_id": pattern},
		})
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
