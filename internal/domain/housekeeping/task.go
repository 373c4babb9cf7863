// Package housekeeping tracks cleaning work generated by the stay lifecycle.
// Checkout upserts exactly one task per (room, date, type), so retries and
// idempotent checkouts never duplicate work for the cleaning crew.
package housekeeping

import (
	"context"
	"time"

	"posada/internal/core/id"
)

// TaskType classifies the work.
type TaskType string

const (
	TaskCheckoutCleaning TaskType = "checkout"
)

// TaskStatus is the task lifecycle state.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
)

// Task is one unit of cleaning work.
type Task struct {
	ID            id.ID `db:"id" json:"id"`
	RoomID        id.ID `db:"room_id" json:"roomId"`
	StayID        id.ID `db:"stay_id" json:"stayId"`
	ReservationID id.ID `db:"reservation_id" json:"reservationId"`

	// TaskDate is the civil date uniqueness is keyed on
	TaskDate time.Time  `db:"task_date" json:"taskDate"`
	Type     TaskType   `db:"task_type" json:"type"`
	Status   TaskStatus `db:"status" json:"status"`
	Notes    string     `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCheckoutTask builds the cleaning job emitted at checkout.
func NewCheckoutTask(roomID, stayID, reservationID id.ID, taskDate time.Time) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:            id.New(),
		RoomID:        roomID,
		StayID:        stayID,
		ReservationID: reservationID,
		TaskDate:      taskDate,
		Type:          TaskCheckoutCleaning,
		Status:        TaskPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Repository defines persistence for housekeeping tasks.
type Repository interface {
	// Upsert inserts the task or returns the existing one keyed on
	// (room, task date, type). The returned task is the persisted row.
	Upsert(ctx context.Context, t *Task) (*Task, error)

	GetByStay(ctx context.Context, stayID id.ID) (*Task, error)
	ListPending(ctx context.Context, taskDate time.Time) ([]*Task, error)
	SetStatus(ctx context.Context, taskID id.ID, status TaskStatus) error
}
