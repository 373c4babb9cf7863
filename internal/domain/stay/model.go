// Package stay tracks the physical visit: check-in to checkout, the room
// occupancy history, and the append-only charge and payment ledgers.
package stay

import (
	"context"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/core/types"
)

// State is the stay lifecycle state.
type State string

const (
	StatePendingCheckIn  State = "pending_checkin"
	StateOccupied        State = "occupied"
	StatePendingCheckout State = "pending_checkout"
	StateClosed          State = "closed"
)

var transitions = map[State][]State{
	StatePendingCheckIn:  {StateOccupied},
	StateOccupied:        {StatePendingCheckout, StateClosed},
	StatePendingCheckout: {StateOccupied, StateClosed},
	StateClosed:          {StateOccupied}, // administrative reopen only
}

// Stay is the physical visit backing a reservation. One stay per reservation.
type Stay struct {
	ID            id.ID `db:"id" json:"id"`
	ReservationID id.ID `db:"reservation_id" json:"reservationId"`

	State State `db:"state" json:"state"`

	// Actual timestamps; CheckOutReal stays nil until checkout commits
	CheckInReal  *time.Time `db:"check_in_real" json:"checkInReal,omitempty"`
	CheckOutReal *time.Time `db:"check_out_real" json:"checkOutReal,omitempty"`

	// CheckOutPlanned overrides the reservation's planned checkout once the
	// stay is extended; nil means the reservation date still applies
	CheckOutPlanned *time.Time `db:"check_out_planned" json:"checkOutPlanned,omitempty"`

	// RateSnapshot freezes the nightly rate at check-in when supplied
	RateSnapshot *types.Money `db:"rate_snapshot" json:"rateSnapshot,omitempty"`

	InternalNotes string `db:"internal_notes" json:"internalNotes,omitempty"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates an occupied stay checked in at the given instant.
func New(reservationID id.ID, checkInReal time.Time) *Stay {
	now := time.Now().UTC()
	return &Stay{
		ID:            id.New(),
		ReservationID: reservationID,
		State:         StateOccupied,
		CheckInReal:   &checkInReal,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks stay invariants.
func (s *Stay) Validate(ctx context.Context) error {
	if id.IsNil(s.ReservationID) {
		return apperror.NewValidation("stay requires a reservation").
			WithDetail("field", "reservationId")
	}
	if s.RateSnapshot != nil && s.RateSnapshot.IsNegative() {
		return apperror.NewValidation("rate snapshot cannot be negative").
			WithDetail("field", "rateSnapshot")
	}
	switch s.State {
	case StatePendingCheckIn, StateOccupied, StatePendingCheckout, StateClosed:
	default:
		return apperror.NewValidation("unknown stay state").
			WithDetail("field", "state").
			WithDetail("value", string(s.State))
	}
	return nil
}

// CanTransitionTo reports whether the transition table allows to.
func (s *Stay) CanTransitionTo(to State) bool {
	for _, allowed := range transitions[s.State] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the stay to a new state, or fails with a StateConflict
// naming the rejected operation.
func (s *Stay) TransitionTo(to State, operation string) error {
	if !s.CanTransitionTo(to) {
		return apperror.NewStateConflict("stay", string(s.State), operation)
	}
	s.State = to
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// IsActive reports whether the guest is on property.
func (s *Stay) IsActive() bool {
	return s.State == StateOccupied || s.State == StatePendingCheckout
}

// IsClosed reports whether checkout has committed.
func (s *Stay) IsClosed() bool {
	return s.State == StateClosed
}

// RoomOccupancy records one interval of a stay in one room. To == nil marks
// the occupancy still active; at most one active occupancy exists per stay.
type RoomOccupancy struct {
	ID     id.ID `db:"id" json:"id"`
	StayID id.ID `db:"stay_id" json:"stayId"`
	RoomID id.ID `db:"room_id" json:"roomId"`

	From time.Time  `db:"from_time" json:"from"`
	To   *time.Time `db:"to_time" json:"to,omitempty"`

	Reason    string    `db:"reason" json:"reason,omitempty"`
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewOccupancy opens an occupancy interval.
func NewOccupancy(stayID, roomID id.ID, from time.Time, reason, createdBy string) *RoomOccupancy {
	return &RoomOccupancy{
		ID:        id.New(),
		StayID:    stayID,
		RoomID:    roomID,
		From:      from,
		Reason:    reason,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}

// IsActive reports whether the interval is still open.
func (o *RoomOccupancy) IsActive() bool {
	return o.To == nil
}

// ActiveOccupancy returns the single open occupancy of a stay, or nil.
func ActiveOccupancy(occupancies []*RoomOccupancy) *RoomOccupancy {
	for _, o := range occupancies {
		if o.IsActive() {
			return o
		}
	}
	return nil
}

// LatestOccupancy picks the occupancy the stay most recently entered: the
// active one if present, otherwise the one with the latest From.
func LatestOccupancy(occupancies []*RoomOccupancy) *RoomOccupancy {
	if active := ActiveOccupancy(occupancies); active != nil {
		return active
	}
	var latest *RoomOccupancy
	for _, o := range occupancies {
		if latest == nil || o.From.After(latest.From) {
			latest = o
		}
	}
	return latest
}
