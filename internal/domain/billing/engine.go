// Package billing computes stay invoices. The engine is a pure function of
// its input snapshot: no I/O, no mutation, deterministic for identical input.
package billing

import (
	"fmt"
	"strings"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/clock"
	"posada/internal/core/types"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/domain/catalogs/room"
	"posada/internal/domain/reservation"
	"posada/internal/domain/settings"
	"posada/internal/domain/stay"
)

// minimumBillableNights is the floor for an open stay: a same-day visit is
// billed at least this many nights. Closed stays keep their historical value
// and may legitimately compute zero.
const minimumBillableNights = 1

// Rate sources recorded in the breakdown, strongest first.
const (
	RateSourceOverride = "override"
	RateSourceSnapshot = "stay_snapshot"
	RateSourceRoomType = "room_type"
	RateSourceMissing  = "missing"
)

// TaxMode selects how the automatic room tax is computed for one call.
type TaxMode string

const (
	TaxModeNormal TaxMode = "normal"
	TaxModeExempt TaxMode = "exempt"
	TaxModeCustom TaxMode = "custom"
)

// Overrides are request-scoped knobs for preview and checkout calls. They
// are never persisted as the stay's canonical rate or nights. Nil pointer
// means not supplied.
type Overrides struct {
	CheckoutDate *time.Time
	Nights       *int
	NightlyRate  *types.Money
	DiscountPct  *types.Money
	TaxMode      *TaxMode
	TaxValue     *types.Money
}

// Input is the full snapshot the engine computes from. Now must already be
// in the hotel's local timezone.
type Input struct {
	Reservation *reservation.Reservation
	Stay        *stay.Stay
	Occupancies []*stay.RoomOccupancy
	Charges     []*stay.Charge
	Payments    []*stay.Payment

	Room     *room.Room
	RoomType *room.RoomType

	Guest   *guest.Guest
	Company *guest.CorporateAccount

	Settings  settings.HotelSettings
	Overrides Overrides
	Now       time.Time
}

// Invoice is the computed breakdown for one stay.
type Invoice struct {
	StayID        string `json:"stayId"`
	ReservationID string `json:"reservationId"`
	GuestName     string `json:"guestName"`
	RoomNumber    string `json:"roomNumber"`
	RoomTypeName  string `json:"roomTypeName"`

	CheckInDate         time.Time `json:"checkInDate"`
	CheckOutPlannedDate time.Time `json:"checkOutPlannedDate"`
	CheckOutDate        time.Time `json:"checkOutDate"`

	PlannedNights    int `json:"plannedNights"`
	CalculatedNights int `json:"calculatedNights"`
	FinalNights      int `json:"finalNights"`

	NightlyRate types.Money `json:"nightlyRate"`
	RateSource  string      `json:"rateSource"`

	RoomSubtotal   types.Money `json:"roomSubtotal"`
	ChargesTotal   types.Money `json:"chargesTotal"`
	TaxesTotal     types.Money `json:"taxesTotal"`
	DiscountsTotal types.Money `json:"discountsTotal"`
	GrandTotal     types.Money `json:"grandTotal"`
	PaymentsTotal  types.Money `json:"paymentsTotal"`
	Balance        types.Money `json:"balance"`

	Warnings []Warning `json:"warnings"`

	// ReadOnly marks a closed stay's computation as historical
	ReadOnly bool `json:"readOnly"`
}

// Engine computes invoices. Stateless; the zero value is usable.
type Engine struct{}

// Compute runs the full invoice algorithm over the input snapshot.
func (Engine) Compute(in Input) (*Invoice, error) {
	if in.Reservation == nil || in.Stay == nil {
		return nil, apperror.NewDataIntegrity("invoice requires reservation and stay")
	}
	if len(in.Occupancies) == 0 {
		return nil, apperror.NewDataIntegrity("stay has no room occupancy")
	}

	inv := &Invoice{
		StayID:        in.Stay.ID.String(),
		ReservationID: in.Reservation.ID.String(),
		GuestName:     resolveGuestName(in),
		ReadOnly:      in.Stay.IsClosed(),
	}
	var warnings []Warning

	// Room and type from the occupancy the stay most recently entered.
	if in.Room != nil {
		inv.RoomNumber = in.Room.Number
	}
	if in.RoomType != nil {
		inv.RoomTypeName = in.RoomType.Name
	}

	// Nightly rate, strongest source first. A missing rate is a fatal data
	// condition surfaced as an error-severity warning, never a zero default.
	rate, source := resolveRate(in)
	inv.NightlyRate = rate
	inv.RateSource = source
	if source == RateSourceMissing || !rate.IsPositive() {
		warnings = append(warnings, warn(WarnMissingRate, SeverityError,
			"no positive nightly rate could be resolved for this stay"))
	} else if source == RateSourceOverride {
		warnings = append(warnings, warn(WarnRateOverride, SeverityInfo,
			fmt.Sprintf("nightly rate overridden to %s", rate.String())))
	}

	// Dates.
	checkIn, err := resolveCheckIn(in)
	if err != nil {
		return nil, err
	}
	inv.CheckInDate = clock.DateOf(checkIn)

	plannedCheckout := in.Reservation.CheckOut
	if in.Stay.CheckOutPlanned != nil {
		plannedCheckout = *in.Stay.CheckOutPlanned
	}
	inv.CheckOutPlannedDate = clock.DateOf(plannedCheckout)

	candidate := resolveCandidate(in)
	inv.CheckOutDate = clock.DateOf(candidate)

	diff := clock.DaysBetween(checkIn, candidate)
	if diff < 0 {
		return nil, apperror.NewValidation("checkout date cannot precede check-in date").
			WithDetail("checkIn", inv.CheckInDate).
			WithDetail("checkout", inv.CheckOutDate)
	}

	// Planned nights come from the reservation's planned dates, not the real
	// check-in: an early or late arrival must not shift the planned count.
	inv.PlannedNights = clock.DaysBetween(in.Reservation.CheckIn, plannedCheckout)
	if inv.PlannedNights < 0 {
		inv.PlannedNights = 0
	}

	// An open same-day stay bills a minimum of one night; a closed stay
	// keeps its historical value, possibly zero.
	inv.CalculatedNights = diff
	if !in.Stay.IsClosed() && inv.CalculatedNights < minimumBillableNights {
		inv.CalculatedNights = minimumBillableNights
	}

	inv.FinalNights = inv.CalculatedNights
	if in.Overrides.Nights != nil {
		if *in.Overrides.Nights < 0 {
			return nil, apperror.NewValidation("nights override cannot be negative").
				WithDetail("nights", *in.Overrides.Nights)
		}
		inv.FinalNights = *in.Overrides.Nights
		warnings = append(warnings, warn(WarnNightsOverride, SeverityInfo,
			fmt.Sprintf("billed nights overridden to %d (calculated %d)", inv.FinalNights, inv.CalculatedNights)))
	}

	if !in.Stay.IsClosed() && diff == 0 {
		warnings = append(warnings, warn(WarnSameDayCandidate, SeverityInfo,
			"same-day checkout: billed as one night"))
	}
	if inv.PlannedNights > 0 && inv.CalculatedNights != inv.PlannedNights {
		warnings = append(warnings, warn(WarnNightsDiffer, SeverityWarning,
			fmt.Sprintf("calculated nights (%d) differ from planned (%d)", inv.CalculatedNights, inv.PlannedNights)))
	}

	inv.RoomSubtotal = rate.Mul(types.NewMoneyFromInt(int64(inv.FinalNights)))

	// Ledger walk. Fees accumulate into taxes, discounts by absolute value
	// into the discount bucket, everything else into charges.
	feesMentionTax := false
	for _, c := range in.Charges {
		if c.TotalAmount.IsZero() {
			warnings = append(warnings, warn(WarnUnpricedCharge, SeverityWarning,
				fmt.Sprintf("charge %q has no amount", c.Description)))
		}
		switch c.Kind {
		case stay.ChargeDiscount:
			inv.DiscountsTotal = inv.DiscountsTotal.Add(c.TotalAmount.Abs())
		case stay.ChargeFee:
			inv.TaxesTotal = inv.TaxesTotal.Add(c.TotalAmount)
			if descriptionMentionsTax(c.Description) {
				feesMentionTax = true
			}
		default:
			inv.ChargesTotal = inv.ChargesTotal.Add(c.TotalAmount)
		}
	}

	// Automatic tax on the room subtotal, unless a fee already covers it or
	// the caller overrode the tax mode.
	autoTax := inv.RoomSubtotal.Mul(in.Settings.TaxRate)
	if in.Overrides.TaxMode != nil {
		switch *in.Overrides.TaxMode {
		case TaxModeExempt:
			autoTax = types.Zero()
		case TaxModeNormal:
			// configured default rate, detection heuristic ignored
		case TaxModeCustom:
			if in.Overrides.TaxValue == nil {
				return nil, apperror.NewValidation("custom tax mode requires a tax value")
			}
			if in.Overrides.TaxValue.IsNegative() {
				return nil, apperror.NewValidation("custom tax value cannot be negative")
			}
			autoTax = *in.Overrides.TaxValue
		default:
			return nil, apperror.NewValidation("unknown tax mode").
				WithDetail("taxMode", string(*in.Overrides.TaxMode))
		}
		warnings = append(warnings, warn(WarnTaxOverride, SeverityInfo,
			fmt.Sprintf("tax mode overridden: %s", *in.Overrides.TaxMode)))
	} else if in.Settings.DetectTaxInFees && feesMentionTax {
		autoTax = types.Zero()
	}
	inv.TaxesTotal = inv.TaxesTotal.Add(autoTax)

	// Percentage discount override on the room subtotal.
	if in.Overrides.DiscountPct != nil {
		pct := *in.Overrides.DiscountPct
		if pct.IsNegative() || pct.GreaterThan(types.NewMoneyFromInt(100)) {
			return nil, apperror.NewValidation("discount percentage must be between 0 and 100").
				WithDetail("discountPct", pct.String())
		}
		inv.DiscountsTotal = inv.DiscountsTotal.Add(
			inv.RoomSubtotal.Mul(pct).Div(types.NewMoneyFromInt(100)))
		warnings = append(warnings, warn(WarnDiscountOverride, SeverityInfo,
			fmt.Sprintf("discount of %s%% applied on the room subtotal", pct.String())))
	}

	inv.GrandTotal = inv.RoomSubtotal.
		Add(inv.ChargesTotal).
		Add(inv.TaxesTotal).
		Sub(inv.DiscountsTotal)

	for _, p := range in.Payments {
		if p.IsReversal || !p.Amount.IsPositive() {
			continue
		}
		inv.PaymentsTotal = inv.PaymentsTotal.Add(p.Amount)
	}
	inv.Balance = inv.GrandTotal.Sub(inv.PaymentsTotal)

	if inv.Balance.IsPositive() {
		warnings = append(warnings, warn(WarnBalanceDue, SeverityWarning,
			fmt.Sprintf("amount due: %s", inv.Balance.String())))
	} else if inv.Balance.IsNegative() {
		warnings = append(warnings, warn(WarnOverpayment, SeverityInfo,
			fmt.Sprintf("overpayment of %s", inv.Balance.Neg().String())))
	}

	inv.Warnings = warnings
	return inv, nil
}

// HasBlockingError reports whether the invoice carries an error-severity
// warning (an unresolved rate).
func (inv *Invoice) HasBlockingError() bool {
	for _, w := range inv.Warnings {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}

func resolveGuestName(in Input) string {
	if in.Guest != nil {
		return in.Guest.DisplayName()
	}
	if in.Company != nil {
		return in.Company.Name
	}
	if in.Reservation.PlaceholderName != "" {
		return in.Reservation.PlaceholderName
	}
	return "Guest"
}

func resolveRate(in Input) (types.Money, string) {
	if in.Overrides.NightlyRate != nil && !in.Overrides.NightlyRate.IsNegative() {
		return *in.Overrides.NightlyRate, RateSourceOverride
	}
	if in.Stay.RateSnapshot != nil {
		return *in.Stay.RateSnapshot, RateSourceSnapshot
	}
	if in.RoomType != nil && in.RoomType.BaseNightlyRate.IsPositive() {
		return in.RoomType.BaseNightlyRate, RateSourceRoomType
	}
	return types.Zero(), RateSourceMissing
}

func resolveCheckIn(in Input) (time.Time, error) {
	if in.Stay.CheckInReal != nil {
		return in.Stay.CheckInReal.In(in.Now.Location()), nil
	}
	// Earliest occupancy start stands in for a missing real check-in.
	var earliest *stay.RoomOccupancy
	for _, o := range in.Occupancies {
		if earliest == nil || o.From.Before(earliest.From) {
			earliest = o
		}
	}
	if earliest == nil {
		return time.Time{}, apperror.NewDataIntegrity("stay has no check-in timestamp and no occupancy")
	}
	return earliest.From.In(in.Now.Location()), nil
}

func resolveCandidate(in Input) time.Time {
	if in.Overrides.CheckoutDate != nil {
		return in.Overrides.CheckoutDate.In(in.Now.Location())
	}
	if in.Stay.IsClosed() && in.Stay.CheckOutReal != nil {
		return in.Stay.CheckOutReal.In(in.Now.Location())
	}
	return in.Now
}

func descriptionMentionsTax(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "iva") || strings.Contains(d, "tax")
}
