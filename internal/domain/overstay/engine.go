// Package overstay detects stays that passed their planned checkout. Pure
// evaluation over a snapshot; persistence and alerting belong to callers.
package overstay

import (
	"time"

	"posada/internal/core/clock"
	"posada/internal/domain/reservation"
	"posada/internal/domain/settings"
	"posada/internal/domain/stay"
)

// Status is the overall verdict.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusOverstay Status = "overstay"
)

// Flags attached to an overstay verdict.
const (
	FlagOverstayDetected = "overstay_detected"
	FlagCriticalOverstay = "critical_overstay"
)

// Reasons recorded in the result metadata.
const (
	ReasonPastDate   = "past_date"
	ReasonTimeCutoff = "time_cutoff"
)

// Result is the evaluation outcome for one stay.
type Result struct {
	Status Status   `json:"status"`
	Flags  []string `json:"flags,omitempty"`

	// Reason is past_date or time_cutoff when Status is overstay
	Reason string `json:"reason,omitempty"`

	// DaysOver counts whole days past the planned checkout (past_date only)
	DaysOver int `json:"daysOver,omitempty"`

	// Cutoff is the configured checkout time as HH:MM (time_cutoff only)
	Cutoff string `json:"cutoff,omitempty"`

	PlannedCheckout time.Time `json:"plannedCheckout,omitempty"`
}

// Input is the snapshot the engine evaluates. Now must already be in the
// hotel's local timezone.
type Input struct {
	Stay        *stay.Stay
	Reservation *reservation.Reservation
	Settings    settings.HotelSettings
	Now         time.Time
}

// Evaluate decides whether the stay overstayed its planned checkout.
// Inactive stays and stays with a recorded real checkout are always normal.
func Evaluate(in Input) Result {
	if in.Stay == nil || !in.Stay.IsActive() || in.Stay.CheckOutReal != nil {
		return Result{Status: StatusNormal}
	}

	planned := in.Reservation.CheckOut
	if in.Stay.CheckOutPlanned != nil {
		planned = *in.Stay.CheckOutPlanned
	}
	plannedDate := clock.DateOf(planned.In(in.Now.Location()))
	today := clock.DateOf(in.Now)

	daysOver := clock.DaysBetween(plannedDate, today)
	switch {
	case daysOver > 0:
		return Result{
			Status:          StatusOverstay,
			Flags:           []string{FlagOverstayDetected, FlagCriticalOverstay},
			Reason:          ReasonPastDate,
			DaysOver:        daysOver,
			PlannedCheckout: plannedDate,
		}
	case daysOver == 0:
		cutoff := in.Settings.CutoffOn(today)
		if !in.Now.Before(cutoff) {
			return Result{
				Status:          StatusOverstay,
				Flags:           []string{FlagOverstayDetected},
				Reason:          ReasonTimeCutoff,
				Cutoff:          in.Settings.CutoffString(),
				PlannedCheckout: plannedDate,
			}
		}
	}
	return Result{Status: StatusNormal, PlannedCheckout: plannedDate}
}
