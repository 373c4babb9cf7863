package settings

import (
	"context"
)

// Repository persists the single per-property settings row.
type Repository interface {
	// Get returns the stored settings, or (nil, nil) when none exist yet.
	Get(ctx context.Context) (*HotelSettings, error)

	// Save inserts or updates the settings row.
	Save(ctx context.Context, s *HotelSettings) error
}
