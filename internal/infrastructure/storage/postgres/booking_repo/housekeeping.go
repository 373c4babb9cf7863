package booking_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"posada/internal/core/id"
	"posada/internal/domain/housekeeping"
	"posada/internal/infrastructure/storage/postgres"
)

const housekeepingTable = "housekeeping_tasks"

var _ housekeeping.Repository = (*HousekeepingRepo)(nil)

// HousekeepingRepo implements housekeeping.Repository. Uniqueness on
// (room_id, task_date, task_type) makes Upsert idempotent: retried
// checkouts land on the existing row.
type HousekeepingRepo struct {
	*BaseBookingRepo[housekeeping.Task]
}

// NewHousekeepingRepo creates a new housekeeping task repository.
func NewHousekeepingRepo(txManager *postgres.TxManager) *HousekeepingRepo {
	return &HousekeepingRepo{
		BaseBookingRepo: NewBaseBookingRepo[housekeeping.Task](
			txManager,
			housekeepingTable,
			postgres.ExtractDBColumns[housekeeping.Task](),
		),
	}
}

// Upsert inserts the task or returns the row already keyed on
// (room, task date, type). The no-op DO UPDATE makes RETURNING yield the
// existing row on conflict.
func (r *HousekeepingRepo) Upsert(ctx context.Context, t *housekeeping.Task) (*housekeeping.Task, error) {
	data := postgres.StructToMap(t)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(housekeepingTable).
		SetMap(filteredData).
		Suffix("ON CONFLICT (room_id, task_date, task_type) DO UPDATE SET updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING " + strings.Join(r.selectCols, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	var task housekeeping.Task
	if err := pgxscan.Get(ctx, r.querier(ctx), &task, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", housekeepingTable, err)
	}

	return &task, nil
}

// GetByStay returns the cleaning task emitted by a stay's checkout.
func (r *HousekeepingRepo) GetByStay(ctx context.Context, stayID id.ID) (*housekeeping.Task, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"stay_id": stayID}).
		OrderBy("created_at DESC").
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListPending returns pending tasks for a civil date.
func (r *HousekeepingRepo) ListPending(ctx context.Context, taskDate time.Time) ([]*housekeeping.Task, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"status": housekeeping.TaskPending}).
		Where(squirrel.Eq{"task_date": taskDate}).
		OrderBy("created_at ASC")

	return r.findMany(ctx, q)
}

// SetStatus transitions a task's status.
func (r *HousekeepingRepo) SetStatus(ctx context.Context, taskID id.ID, status housekeeping.TaskStatus) error {
	q := r.Builder().
		Update(housekeepingTable).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": taskID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("set task status: %w", err)
	}

	return nil
}
