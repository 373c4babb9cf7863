package guest

import (
	"context"
	"time"

	"posada/internal/core/id"
	"posada/internal/core/tx"
	"posada/internal/domain"
	"posada/pkg/logger"
)

// Service provides guest and corporate account catalog operations.
type Service struct {
	guests    Repository
	companies CompanyRepository
	txManager tx.Manager
}

// NewService creates a guest catalog service.
func NewService(guests Repository, companies CompanyRepository, txManager tx.Manager) *Service {
	return &Service{guests: guests, companies: companies, txManager: txManager}
}

// CreateGuest validates and persists a guest.
func (s *Service) CreateGuest(ctx context.Context, g *Guest) error {
	if err := g.Validate(ctx); err != nil {
		return err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.guests.Create(ctx, g)
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "guest created", "id", g.ID)
	return nil
}

// UpdateGuest persists guest changes.
func (s *Service) UpdateGuest(ctx context.Context, g *Guest) error {
	if err := g.Validate(ctx); err != nil {
		return err
	}
	g.UpdatedAt = time.Now().UTC()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.guests.Update(ctx, g)
	})
}

// GetGuest fetches a guest by ID.
func (s *Service) GetGuest(ctx context.Context, guestID id.ID) (*Guest, error) {
	return s.guests.GetByID(ctx, guestID)
}

// ListGuests returns guests matching the filter.
func (s *Service) ListGuests(ctx context.Context, filter ListFilter) (domain.ListResult[*Guest], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	return s.guests.List(ctx, filter)
}

// CreateCompany validates and persists a corporate account.
func (s *Service) CreateCompany(ctx context.Context, c *CorporateAccount) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.companies.Create(ctx, c)
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "corporate account created", "id", c.ID, "name", c.Name)
	return nil
}

// UpdateCompany persists corporate account changes.
func (s *Service) UpdateCompany(ctx context.Context, c *CorporateAccount) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.companies.Update(ctx, c)
	})
}

// GetCompany fetches a corporate account by ID.
func (s *Service) GetCompany(ctx context.Context, companyID id.ID) (*CorporateAccount, error) {
	return s.companies.GetByID(ctx, companyID)
}

// ListCompanies returns corporate accounts matching the filter.
func (s *Service) ListCompanies(ctx context.Context, filter ListFilter) (domain.ListResult[*CorporateAccount], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	return s.companies.List(ctx, filter)
}
