package stay

import (
	"context"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/core/types"
)

// ChargeKind classifies a charge line for billing. Discounts reduce the
// total; fees may carry tax and can suppress the automatic room tax.
type ChargeKind string

const (
	ChargeRoomNight ChargeKind = "room_night"
	ChargeService   ChargeKind = "service"
	ChargeFee       ChargeKind = "fee"
	ChargeDiscount  ChargeKind = "discount"
)

// Charge is one append-only ledger line. Corrections are new compensating
// lines, never edits.
type Charge struct {
	ID     id.ID `db:"id" json:"id"`
	StayID id.ID `db:"stay_id" json:"stayId"`

	Kind        ChargeKind     `db:"kind" json:"kind"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	UnitAmount  types.Money    `db:"unit_amount" json:"unitAmount"`
	TotalAmount types.Money    `db:"total_amount" json:"totalAmount"`
	Description string         `db:"description" json:"description"`

	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewCharge builds a charge line. TotalAmount is always quantity x unit.
func NewCharge(stayID id.ID, kind ChargeKind, qty types.Quantity, unit types.Money, description, createdBy string) *Charge {
	return &Charge{
		ID:          id.New(),
		StayID:      stayID,
		Kind:        kind,
		Quantity:    qty,
		UnitAmount:  unit,
		TotalAmount: qty.Mul(unit),
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks charge invariants.
func (c *Charge) Validate(ctx context.Context) error {
	switch c.Kind {
	case ChargeRoomNight, ChargeService, ChargeFee, ChargeDiscount:
	default:
		return apperror.NewValidation("unknown charge kind").
			WithDetail("field", "kind").
			WithDetail("value", string(c.Kind))
	}
	if c.Quantity.IsNegative() {
		return apperror.NewValidation("charge quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if c.UnitAmount.IsNegative() {
		return apperror.NewValidation("charge unit amount cannot be negative").
			WithDetail("field", "unitAmount")
	}
	if c.TotalAmount.IsNegative() {
		return apperror.NewValidation("charge total cannot be negative").
			WithDetail("field", "totalAmount")
	}
	if c.Description == "" {
		return apperror.NewValidation("charge description is required").
			WithDetail("field", "description")
	}
	return nil
}

// PaymentMethod is how money arrived.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

// Payment is one append-only money movement on a stay. A reversal is a new
// entry with the negated amount; both rows carry IsReversal and neither is
// ever deleted.
type Payment struct {
	ID     id.ID `db:"id" json:"id"`
	StayID id.ID `db:"stay_id" json:"stayId"`

	Amount    types.Money   `db:"amount" json:"amount"`
	Method    PaymentMethod `db:"method" json:"method"`
	Reference string        `db:"reference" json:"reference,omitempty"`

	IsReversal bool   `db:"is_reversal" json:"isReversal"`
	ReversesID *id.ID `db:"reverses_id" json:"reversesId,omitempty"`
	Notes      string `db:"notes" json:"notes,omitempty"`

	RecordedBy string    `db:"recorded_by" json:"recordedBy"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

// NewPayment builds a payment entry.
func NewPayment(stayID id.ID, amount types.Money, method PaymentMethod, reference, recordedBy string) *Payment {
	return &Payment{
		ID:         id.New(),
		StayID:     stayID,
		Amount:     amount,
		Method:     method,
		Reference:  reference,
		RecordedBy: recordedBy,
		RecordedAt: time.Now().UTC(),
	}
}

// Reverse builds the offsetting entry for this payment.
func (p *Payment) Reverse(reason, recordedBy string) *Payment {
	return &Payment{
		ID:         id.New(),
		StayID:     p.StayID,
		Amount:     p.Amount.Neg(),
		Method:     p.Method,
		Reference:  p.Reference,
		IsReversal: true,
		ReversesID: &p.ID,
		Notes:      reason,
		RecordedBy: recordedBy,
		RecordedAt: time.Now().UTC(),
	}
}

// Validate checks payment invariants.
func (p *Payment) Validate(ctx context.Context) error {
	switch p.Method {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
	default:
		return apperror.NewValidation("unknown payment method").
			WithDetail("field", "method").
			WithDetail("value", string(p.Method))
	}
	if !p.IsReversal && !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}
	return nil
}
