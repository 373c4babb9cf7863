package settings

import (
	"context"

	"posada/internal/core/tx"
	"posada/pkg/logger"
)

// Service exposes hotel settings with defaults applied when no row exists.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the effective settings. Missing rows resolve to defaults so
// the engines always have a cutoff, timezone and tax rate to work with.
func (s *Service) Get(ctx context.Context) (*HotelSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		def := Default()
		return &def, nil
	}
	return stored, nil
}

// Update validates and persists new settings.
func (s *Service) Update(ctx context.Context, updated *HotelSettings) error {
	if err := updated.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, updated)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "hotel settings updated",
		"checkout_cutoff", updated.CutoffString(),
		"timezone", updated.Timezone,
	)
	return nil
}
