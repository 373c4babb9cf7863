// Package reservation provides the booking intent lifecycle. A reservation
// is the commercial agreement; the physical visit is tracked by the stay
// package once check-in happens.
package reservation

import (
	"context"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/clock"
	"posada/internal/core/id"
)

// State is the reservation lifecycle state.
type State string

const (
	StateDraft     State = "draft"
	StateConfirmed State = "confirmed"
	StateOccupied  State = "occupied"
	StateCancelled State = "cancelled"
	StateNoShow    State = "no_show"
	StateClosed    State = "closed"
)

// transitions is the closed set of legal state changes. Anything absent
// here is a StateConflict.
var transitions = map[State][]State{
	StateDraft:     {StateConfirmed, StateOccupied, StateCancelled, StateNoShow},
	StateConfirmed: {StateOccupied, StateCancelled, StateNoShow},
	StateOccupied:  {StateClosed},
	StateClosed:    {StateOccupied}, // administrative reopen only
	StateCancelled: {},
	StateNoShow:    {},
}

// Origin records where the booking came from.
type Origin string

const (
	OriginDirect  Origin = "direct"
	OriginPhone   Origin = "phone"
	OriginWalkIn  Origin = "walk_in"
	OriginChannel Origin = "channel"
)

// Reservation is a booking intent for a date range. The holder is either a
// guest, a corporate account, or a free-text placeholder name.
type Reservation struct {
	ID id.ID `db:"id" json:"id"`

	GuestID         *id.ID `db:"guest_id" json:"guestId,omitempty"`
	CompanyID       *id.ID `db:"company_id" json:"companyId,omitempty"`
	PlaceholderName string `db:"placeholder_name" json:"placeholderName,omitempty"`

	// Planned civil dates; CheckOut must be strictly after CheckIn
	CheckIn  time.Time `db:"check_in" json:"checkIn"`
	CheckOut time.Time `db:"check_out" json:"checkOut"`

	State  State  `db:"state" json:"state"`
	Origin Origin `db:"origin" json:"origin"`
	Notes  string `db:"notes" json:"notes,omitempty"`

	CancelReason string     `db:"cancel_reason" json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `db:"cancelled_at" json:"cancelledAt,omitempty"`
	CancelledBy  string     `db:"cancelled_by" json:"cancelledBy,omitempty"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a draft reservation for the given planned dates.
func New(checkIn, checkOut time.Time) *Reservation {
	now := time.Now().UTC()
	return &Reservation{
		ID:        id.New(),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		State:     StateDraft,
		Origin:    OriginDirect,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks reservation invariants.
func (r *Reservation) Validate(ctx context.Context) error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return apperror.NewValidation("planned check-in and check-out dates are required").
			WithDetail("field", "checkIn")
	}
	if !r.CheckOut.After(r.CheckIn) {
		return apperror.NewValidation("planned check-out must be after check-in").
			WithDetail("checkIn", r.CheckIn).
			WithDetail("checkOut", r.CheckOut)
	}
	if r.GuestID == nil && r.CompanyID == nil && r.PlaceholderName == "" {
		return apperror.NewValidation("reservation holder is required: guest, company, or placeholder name")
	}
	switch r.State {
	case StateDraft, StateConfirmed, StateOccupied, StateCancelled, StateNoShow, StateClosed:
	default:
		return apperror.NewValidation("unknown reservation state").
			WithDetail("field", "state").
			WithDetail("value", string(r.State))
	}
	return nil
}

// CanTransitionTo reports whether the transition table allows to.
func (r *Reservation) CanTransitionTo(to State) bool {
	for _, allowed := range transitions[r.State] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the reservation to a new state, or fails with a
// StateConflict naming the rejected operation.
func (r *Reservation) TransitionTo(to State, operation string) error {
	if !r.CanTransitionTo(to) {
		return apperror.NewStateConflict("reservation", string(r.State), operation)
	}
	r.State = to
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// CanCheckIn reports whether check-in is allowed in the current state.
func (r *Reservation) CanCheckIn() bool {
	return r.State == StateDraft || r.State == StateConfirmed
}

// IsEditable reports whether planned dates and holder fields may change.
func (r *Reservation) IsEditable() bool {
	return r.State == StateDraft || r.State == StateConfirmed
}

// IsTerminal reports whether the reservation reached a dead-end state.
func (r *Reservation) IsTerminal() bool {
	return r.State == StateCancelled || r.State == StateNoShow
}

// PlannedNights is the planned length of the visit in whole nights.
func (r *Reservation) PlannedNights() int {
	n := clock.DaysBetween(r.CheckIn, r.CheckOut)
	if n < 0 {
		return 0
	}
	return n
}
