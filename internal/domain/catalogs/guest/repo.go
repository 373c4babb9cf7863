package guest

import (
	"context"

	"posada/internal/core/id"
	"posada/internal/domain"
)

// ListFilter contains filtering options for guest listings.
type ListFilter struct {
	Search  string
	OrderBy string
	Limit   int
	Offset  int
}

// Repository defines persistence for guests.
type Repository interface {
	Create(ctx context.Context, g *Guest) error
	Update(ctx context.Context, g *Guest) error
	GetByID(ctx context.Context, guestID id.ID) (*Guest, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Guest], error)
}

// CompanyRepository defines persistence for corporate accounts.
type CompanyRepository interface {
	Create(ctx context.Context, c *CorporateAccount) error
	Update(ctx context.Context, c *CorporateAccount) error
	GetByID(ctx context.Context, companyID id.ID) (*CorporateAccount, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*CorporateAccount], error)
}
