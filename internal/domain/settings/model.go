// Package settings provides the per-property configuration consumed by the
// billing and overstay engines: checkout cutoff, timezone, tax policy.
package settings

import (
	"context"
	"fmt"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/core/types"
)

// Defaults applied when a property has no stored settings row.
const (
	DefaultCheckoutHour   = 12
	DefaultCheckoutMinute = 0
	DefaultTimezone       = "America/Argentina/Buenos_Aires"
)

// DefaultTaxRate is the automatic tax applied to the room subtotal (21%).
var DefaultTaxRate = types.MustMoney("0.21")

// HotelSettings carries the property-level knobs the core depends on.
type HotelSettings struct {
	ID id.ID `db:"id" json:"id"`

	// Checkout cutoff time-of-day, hotel-local
	CheckoutHour   int `db:"checkout_hour" json:"checkoutHour"`
	CheckoutMinute int `db:"checkout_minute" json:"checkoutMinute"`

	// Timezone is the IANA name of the hotel's local timezone
	Timezone string `db:"timezone" json:"timezone"`

	// TaxRate is the default automatic tax rate on the room subtotal
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	// DetectTaxInFees suppresses the automatic room tax when a fee charge's
	// description already mentions tax. Kept as an explicit switch because
	// the textual detection is content-dependent.
	DetectTaxInFees bool `db:"detect_tax_in_fees" json:"detectTaxInFees"`

	// OverstayPrice is an optional flat surcharge suggestion for overstays
	OverstayPrice *types.Money `db:"overstay_price" json:"overstayPrice,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Default returns settings with all property knobs at their defaults.
func Default() HotelSettings {
	now := time.Now().UTC()
	return HotelSettings{
		ID:              id.New(),
		CheckoutHour:    DefaultCheckoutHour,
		CheckoutMinute:  DefaultCheckoutMinute,
		Timezone:        DefaultTimezone,
		TaxRate:         DefaultTaxRate,
		DetectTaxInFees: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate checks settings invariants.
func (s *HotelSettings) Validate(ctx context.Context) error {
	if s.CheckoutHour < 0 || s.CheckoutHour > 23 {
		return apperror.NewValidation("checkout hour must be between 0 and 23").
			WithDetail("field", "checkoutHour")
	}
	if s.CheckoutMinute < 0 || s.CheckoutMinute > 59 {
		return apperror.NewValidation("checkout minute must be between 0 and 59").
			WithDetail("field", "checkoutMinute")
	}
	if s.TaxRate.IsNegative() {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("field", "taxRate")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return apperror.NewValidation("unknown timezone").
			WithDetail("field", "timezone").
			WithDetail("value", s.Timezone)
	}
	return nil
}

// Location resolves the hotel timezone, falling back to UTC if unparseable.
func (s *HotelSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CutoffString renders the cutoff as HH:MM for overstay metadata.
func (s *HotelSettings) CutoffString() string {
	return fmt.Sprintf("%02d:%02d", s.CheckoutHour, s.CheckoutMinute)
}

// CutoffOn anchors the cutoff time-of-day to a given civil date.
func (s *HotelSettings) CutoffOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.CheckoutHour, s.CheckoutMinute, 0, 0, date.Location())
}
