package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"posada/internal/domain/settings"
	"posada/internal/infrastructure/storage/postgres"
)

const settingsTable = "hotel_settings"

var _ settings.Repository = (*SettingsRepo)(nil)

// SettingsRepo persists the single hotel settings row.
type SettingsRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txManager *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[settings.HotelSettings](),
	}
}

func (r *SettingsRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get returns the stored settings, or (nil, nil) when none exist yet.
func (r *SettingsRepo) Get(ctx context.Context) (*settings.HotelSettings, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(settingsTable).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row settings.HotelSettings
	err = pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &row, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", settingsTable, err)
	}

	return &row, nil
}

// Save inserts or updates the settings row. The table holds at most one row,
// keyed by id, so the upsert targets the primary key.
func (r *SettingsRepo) Save(ctx context.Context, s *settings.HotelSettings) error {
	data := postgres.StructToMap(s)

	cols := make([]string, 0, len(r.selectCols))
	vals := make([]any, 0, len(r.selectCols))
	updates := make([]string, 0, len(r.selectCols))
	for _, col := range r.selectCols {
		val, ok := data[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, val)
		if col != "id" && col != "created_at" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	q := r.builder().
		Insert(settingsTable).
		Columns(cols...).
		Values(vals...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save %s: %w", settingsTable, err)
	}

	return nil
}
