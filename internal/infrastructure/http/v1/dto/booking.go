package dto

import (
	"time"

	"posada/internal/core/id"
	"posada/internal/core/types"
	"posada/internal/domain/billing"
	"posada/internal/domain/frontdesk"
	"posada/internal/domain/reservation"
	"posada/internal/domain/stay"
)

// --- Reservations ---

// CreateReservationRequest is the request body for creating a reservation.
type CreateReservationRequest struct {
	GuestID         *id.ID `json:"guestId"`
	CompanyID       *id.ID `json:"companyId"`
	PlaceholderName string `json:"placeholderName"`

	CheckIn  time.Time `json:"checkIn" binding:"required"`
	CheckOut time.Time `json:"checkOut" binding:"required"`

	State  reservation.State  `json:"state"`
	Origin reservation.Origin `json:"origin"`
	Notes  string             `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReservationRequest) ToEntity() *reservation.Reservation {
	res := reservation.New(r.CheckIn, r.CheckOut)
	res.GuestID = r.GuestID
	res.CompanyID = r.CompanyID
	res.PlaceholderName = r.PlaceholderName
	if r.State != "" {
		res.State = r.State
	}
	if r.Origin != "" {
		res.Origin = r.Origin
	}
	res.Notes = r.Notes
	return res
}

// UpdateReservationRequest is the request body for updating a reservation.
type UpdateReservationRequest struct {
	GuestID         *id.ID `json:"guestId"`
	CompanyID       *id.ID `json:"companyId"`
	PlaceholderName string `json:"placeholderName"`

	CheckIn  time.Time `json:"checkIn" binding:"required"`
	CheckOut time.Time `json:"checkOut" binding:"required"`

	Origin reservation.Origin `json:"origin"`
	Notes  string             `json:"notes"`

	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateReservationRequest) ApplyTo(res *reservation.Reservation) {
	res.GuestID = r.GuestID
	res.CompanyID = r.CompanyID
	res.PlaceholderName = r.PlaceholderName
	res.CheckIn = r.CheckIn
	res.CheckOut = r.CheckOut
	if r.Origin != "" {
		res.Origin = r.Origin
	}
	res.Notes = r.Notes
	res.Version = r.Version
}

// CancelReservationRequest carries the mandatory cancel reason.
type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReservationListFilter contains query parameters for reservation listings.
type ReservationListFilter struct {
	PageRequest
	Search      string     `form:"search"`
	State       string     `form:"state"`
	GuestID     string     `form:"guestId"`
	CompanyID   string     `form:"companyId"`
	CheckInFrom *time.Time `form:"checkInFrom"`
	CheckInTo   *time.Time `form:"checkInTo"`
}

// --- Check-in ---

// CheckInRequest is the request body for checking a reservation in.
type CheckInRequest struct {
	RoomID id.ID `json:"roomId" binding:"required"`

	RateSnapshot *types.Money `json:"rateSnapshot"`

	Deposit       *types.Money       `json:"deposit"`
	DepositMethod stay.PaymentMethod `json:"depositMethod"`

	Notes string `json:"notes"`
}

// Options converts the DTO into check-in options.
func (r *CheckInRequest) Options() frontdesk.CheckInOptions {
	return frontdesk.CheckInOptions{
		RateSnapshot:  r.RateSnapshot,
		Deposit:       r.Deposit,
		DepositMethod: r.DepositMethod,
		Notes:         r.Notes,
	}
}

// --- Stay operations ---

// MoveRoomRequest moves a stay to another room.
type MoveRoomRequest struct {
	ToRoomID id.ID  `json:"toRoomId" binding:"required"`
	Reason   string `json:"reason"`
}

// ExtendStayRequest pushes the planned checkout to a later date.
type ExtendStayRequest struct {
	NewCheckout time.Time `json:"newCheckout" binding:"required"`
	Reason      string    `json:"reason"`
}

// AddChargeRequest appends one entry to the charge ledger.
type AddChargeRequest struct {
	Kind        stay.ChargeKind `json:"kind" binding:"required"`
	Quantity    types.Quantity  `json:"quantity" binding:"required"`
	UnitAmount  types.Money     `json:"unitAmount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// RegisterPaymentRequest appends one entry to the payment ledger.
type RegisterPaymentRequest struct {
	Amount    types.Money        `json:"amount" binding:"required"`
	Method    stay.PaymentMethod `json:"method" binding:"required"`
	Reference string             `json:"reference"`
}

// ReversePaymentRequest nets out a prior payment.
type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InvoiceOverrides carries the manual adjustments accepted by the invoice
// computation. All fields are optional.
type InvoiceOverrides struct {
	CheckoutDate *time.Time       `json:"checkoutDate"`
	Nights       *int             `json:"nights"`
	NightlyRate  *types.Money     `json:"nightlyRate"`
	DiscountPct  *types.Money     `json:"discountPct"`
	TaxMode      *billing.TaxMode `json:"taxMode"`
	TaxValue     *types.Money     `json:"taxValue"`
}

// ToOverrides converts the DTO into engine overrides.
func (r *InvoiceOverrides) ToOverrides() billing.Overrides {
	if r == nil {
		return billing.Overrides{}
	}
	return billing.Overrides{
		CheckoutDate: r.CheckoutDate,
		Nights:       r.Nights,
		NightlyRate:  r.NightlyRate,
		DiscountPct:  r.DiscountPct,
		TaxMode:      r.TaxMode,
		TaxValue:     r.TaxValue,
	}
}

// CheckoutRequest is the request body for closing a stay.
type CheckoutRequest struct {
	FinalPayment       *types.Money       `json:"finalPayment"`
	FinalPaymentMethod stay.PaymentMethod `json:"finalPaymentMethod"`

	AllowCloseWithDebt bool `json:"allowCloseWithDebt"`

	Overrides *InvoiceOverrides `json:"overrides"`
	Notes     string            `json:"notes"`
}

// Options converts the DTO into checkout options.
func (r *CheckoutRequest) Options() frontdesk.CheckoutOptions {
	return frontdesk.CheckoutOptions{
		FinalPayment:       r.FinalPayment,
		FinalPaymentMethod: r.FinalPaymentMethod,
		AllowCloseWithDebt: r.AllowCloseWithDebt,
		Overrides:          r.Overrides.ToOverrides(),
		Notes:              r.Notes,
	}
}

// InvoicePreviewRequest computes an invoice without mutating anything.
type InvoicePreviewRequest struct {
	Overrides *InvoiceOverrides `json:"overrides"`
}

// ReopenStayRequest reverts a closed stay. Admin only, reason mandatory.
type ReopenStayRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// StayListFilter contains query parameters for stay listings.
type StayListFilter struct {
	PageRequest
	State  string `form:"state"`
	RoomID string `form:"roomId"`
}
