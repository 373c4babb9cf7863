// Package audit defines the append-only trail of state transitions and
// override applications. Events are written by the operational services and
// read only by external reporting.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"posada/internal/core/id"
)

// Action identifies the committed operation an event records.
type Action string

const (
	ActionCreate          Action = "create"
	ActionUpdate          Action = "update"
	ActionConfirm         Action = "confirm"
	ActionCancel          Action = "cancel"
	ActionNoShow          Action = "no_show"
	ActionCheckIn         Action = "checkin"
	ActionRoomMove        Action = "room_move"
	ActionExtendStay      Action = "extend_stay"
	ActionCharge          Action = "charge"
	ActionPayment         Action = "payment"
	ActionPaymentReversal Action = "payment_reversal"
	ActionCheckout        Action = "checkout"
	ActionReopen          Action = "reopen"
)

// Event is a single audit trail entry. Append-only: events are never
// updated or deleted.
type Event struct {
	ID         id.ID           `db:"id"`
	EntityType string          `db:"entity_type"`
	EntityID   id.ID           `db:"entity_id"`
	Action     Action          `db:"action"`
	Actor      string          `db:"actor"`
	Payload    json.RawMessage `db:"payload"`
	CreatedAt  time.Time       `db:"created_at"`
}

// NewEvent builds an event with a structured payload. Marshal failures are
// impossible for the map payloads the services construct; a failure leaves
// the payload empty rather than dropping the event.
func NewEvent(entityType string, entityID id.ID, action Action, actor string, payload map[string]any) Event {
	var raw json.RawMessage
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			raw = b
		}
	}
	return Event{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Payload:    raw,
		CreatedAt:  time.Now().UTC(),
	}
}

// Recorder persists audit events. Implementations append within the
// caller's transaction so an event commits atomically with the transition
// it describes.
type Recorder interface {
	Record(ctx context.Context, event Event) error

	// ListByEntity returns events for one entity, oldest first.
	ListByEntity(ctx context.Context, entityType string, entityID id.ID) ([]Event, error)
}
