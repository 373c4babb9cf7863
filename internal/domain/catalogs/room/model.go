// Package room provides the Room and RoomType catalogs. RoomType carries the
// base nightly rate the billing engine falls back to when a stay has no rate
// snapshot and the caller supplied no override.
package room

import (
	"context"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/core/types"
)

// OperationalStatus tracks what the room is doing right now. Owned by the
// operational services, not by the occupancy ledger (which only records
// intervals).
type OperationalStatus string

const (
	StatusAvailable   OperationalStatus = "available"
	StatusOccupied    OperationalStatus = "occupied"
	StatusCleaning    OperationalStatus = "cleaning"
	StatusMaintenance OperationalStatus = "maintenance"
)

// RoomType groups rooms sharing capacity and pricing.
type RoomType struct {
	ID   id.ID  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	// BaseNightlyRate is the configured fallback rate for the type
	BaseNightlyRate types.Money `db:"base_nightly_rate" json:"baseNightlyRate"`

	Capacity int `db:"capacity" json:"capacity"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate implements entity self-validation.
func (t *RoomType) Validate(ctx context.Context) error {
	if t.Name == "" {
		return apperror.NewValidation("room type name is required").
			WithDetail("field", "name")
	}
	if t.BaseNightlyRate.IsNegative() {
		return apperror.NewValidation("base nightly rate cannot be negative").
			WithDetail("field", "baseNightlyRate")
	}
	if t.Capacity < 1 {
		return apperror.NewValidation("capacity must be at least 1").
			WithDetail("field", "capacity")
	}
	return nil
}

// Room is a physical room on the property.
type Room struct {
	ID         id.ID             `db:"id" json:"id"`
	Number     string            `db:"number" json:"number"`
	RoomTypeID id.ID             `db:"room_type_id" json:"roomTypeId"`
	Floor      int               `db:"floor" json:"floor"`
	Status     OperationalStatus `db:"status" json:"status"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewRoom creates an available room.
func NewRoom(number string, roomTypeID id.ID, floor int) *Room {
	now := time.Now().UTC()
	return &Room{
		ID:         id.New(),
		Number:     number,
		RoomTypeID: roomTypeID,
		Floor:      floor,
		Status:     StatusAvailable,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewRoomType creates a room type.
func NewRoomType(name string, baseRate types.Money, capacity int) *RoomType {
	now := time.Now().UTC()
	return &RoomType{
		ID:              id.New(),
		Name:            name,
		BaseNightlyRate: baseRate,
		Capacity:        capacity,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate implements entity self-validation.
func (r *Room) Validate(ctx context.Context) error {
	if r.Number == "" {
		return apperror.NewValidation("room number is required").
			WithDetail("field", "number")
	}
	if id.IsNil(r.RoomTypeID) {
		return apperror.NewValidation("room type is required").
			WithDetail("field", "roomTypeId")
	}
	switch r.Status {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance:
	default:
		return apperror.NewValidation("unknown room status").
			WithDetail("field", "status").
			WithDetail("value", string(r.Status))
	}
	return nil
}

// IsOccupied reports whether the room currently hosts a stay.
func (r *Room) IsOccupied() bool {
	return r.Status == StatusOccupied
}
