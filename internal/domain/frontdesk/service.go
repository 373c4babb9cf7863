// Package frontdesk orchestrates the stay lifecycle: check-in, room moves,
// the charge and payment ledgers, checkout and administrative reopen. Every
// mutating operation runs in one transaction and commits its audit event
// atomically with the transition it records.
package frontdesk

import (
	"context"
	"time"

	"posada/internal/core/apperror"
	"posada/internal/core/clock"
	appctx "posada/internal/core/context"
	"posada/internal/core/id"
	"posada/internal/core/tx"
	"posada/internal/core/types"
	"posada/internal/domain"
	"posada/internal/domain/audit"
	"posada/internal/domain/billing"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/domain/catalogs/room"
	"posada/internal/domain/housekeeping"
	"posada/internal/domain/overstay"
	"posada/internal/domain/reservation"
	"posada/internal/domain/settings"
	"posada/internal/domain/stay"
	"posada/pkg/logger"
)

// StayEntityType is the audit trail entity key for stays.
const StayEntityType = "stay"

// Deps wires the collaborators the front desk needs.
type Deps struct {
	Stays        stay.StayRepository
	Occupancies  stay.OccupancyRepository
	Charges      stay.ChargeRepository
	Payments     stay.PaymentRepository
	Reservations reservation.Repository
	Rooms        room.Repository
	RoomTypes    room.TypeRepository
	Guests       guest.Repository
	Companies    guest.CompanyRepository
	Housekeeping housekeeping.Repository
	Settings     *settings.Service
	Audit        audit.Recorder
	TxManager    tx.Manager
	Clock        clock.Clock
}

// Service is the front desk.
type Service struct {
	deps   Deps
	engine billing.Engine
}

// NewService creates the front desk service.
func NewService(deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	return &Service{deps: deps}
}

// hotelNow reads the wall clock in the hotel's configured timezone.
func (s *Service) hotelNow(ctx context.Context) (time.Time, *settings.HotelSettings, error) {
	cfg, err := s.deps.Settings.Get(ctx)
	if err != nil {
		return time.Time{}, nil, err
	}
	hc := clock.NewHotel(s.deps.Clock, cfg.Location())
	return hc.Now(), cfg, nil
}

// CheckInOptions are the optional knobs for check-in.
type CheckInOptions struct {
	// RateSnapshot freezes the nightly rate for the whole stay
	RateSnapshot *types.Money

	// Deposit registers an initial payment together with the check-in
	Deposit       *types.Money
	DepositMethod stay.PaymentMethod

	Notes string
}

// CheckIn turns a reservation into a physical stay: creates the stay, opens
// the first occupancy, marks the room occupied, flips the reservation.
func (s *Service) CheckIn(ctx context.Context, reservationID, roomID id.ID, opts CheckInOptions) (*stay.Stay, error) {
	now, _, err := s.hotelNow(ctx)
	if err != nil {
		return nil, err
	}
	actor := appctx.Actor(ctx)

	var created *stay.Stay
	err = s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		res, err := s.deps.Reservations.GetByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if !res.CanCheckIn() {
			return apperror.NewStateConflict(reservation.EntityType, string(res.State), "check in")
		}
		if existing, err := s.deps.Stays.GetByReservation(ctx, reservationID); err == nil && existing != nil {
			return apperror.NewStateConflict(reservation.EntityType, string(res.State), "check in").
				WithDetail("stayId", existing.ID)
		} else if err != nil && !apperror.IsNotFound(err) {
			return err
		}

		rm, err := s.deps.Rooms.GetByID(ctx, roomID)
		if err != nil {
			return err
		}
		if rm.IsOccupied() {
			return apperror.NewStateConflict("room", string(rm.Status), "check in")
		}

		today := clock.DateOf(now)
		if today.Before(clock.DateOf(res.CheckIn)) || !today.Before(clock.DateOf(res.CheckOut)) {
			logger.Warn(ctx, "check-in outside planned window",
				"reservation_id", res.ID, "today", today, "planned_from", res.CheckIn, "planned_to", res.CheckOut)
		}

		st := stay.New(reservationID, now)
		if opts.RateSnapshot != nil {
			if opts.RateSnapshot.IsNegative() {
				return apperror.NewValidation("rate snapshot cannot be negative")
			}
			st.RateSnapshot = opts.RateSnapshot
		}
		st.InternalNotes = opts.Notes
		if err := st.Validate(ctx); err != nil {
			return err
		}
		if err := s.deps.Stays.Create(ctx, st); err != nil {
			return err
		}

		occ := stay.NewOccupancy(st.ID, roomID, now, "checkin", actor)
		if err := s.deps.Occupancies.Create(ctx, occ); err != nil {
			return err
		}

		rm.Status = room.StatusOccupied
		rm.UpdatedAt = time.Now().UTC()
		if err := s.deps.Rooms.Update(ctx, rm); err != nil {
			return err
		}

		if err := res.TransitionTo(reservation.StateOccupied, "check in"); err != nil {
			return err
		}
		if err := s.deps.Reservations.Update(ctx, res); err != nil {
			return err
		}

		if opts.Deposit != nil && opts.Deposit.IsPositive() {
			method := opts.DepositMethod
			if method == "" {
				method = stay.PaymentCash
			}
			deposit := stay.NewPayment(st.ID, *opts.Deposit, method, "deposit", actor)
			if err := deposit.Validate(ctx); err != nil {
				return err
			}
			if err := s.deps.Payments.Create(ctx, deposit); err != nil {
				return err
			}
			if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, st.ID,
				audit.ActionPayment, actor, map[string]any{
					"paymentId": deposit.ID, "amount": deposit.Amount, "method": method,
				})); err != nil {
				return err
			}
		}

		if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, st.ID,
			audit.ActionCheckIn, actor, map[string]any{
				"reservationId": reservationID,
				"roomId":        roomID,
				"checkInReal":   now,
			})); err != nil {
			return err
		}

		created = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "guest checked in", "stay_id", created.ID, "room_id", roomID)
	return created, nil
}

// MoveRoom relocates an active stay: closes the current occupancy interval
// and opens one for the destination room.
func (s *Service) MoveRoom(ctx context.Context, stayID, toRoomID id.ID, reason string) (*stay.RoomOccupancy, error) {
	now, _, err := s.hotelNow(ctx)
	if err != nil {
		return nil, err
	}
	actor := appctx.Actor(ctx)

	var opened *stay.RoomOccupancy
	err = s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.deps.Stays.GetByID(ctx, stayID)
		if err != nil {
			return err
		}
		if !st.IsActive() {
			return apperror.NewStateConflict(StayEntityType, string(st.State), "move room")
		}

		occupancies, err := s.deps.Occupancies.ListByStay(ctx, stayID)
		if err != nil {
			return err
		}
		active := stay.ActiveOccupancy(occupancies)
		if active == nil {
			return apperror.NewDataIntegrity("stay has no active occupancy")
		}
		if active.RoomID == toRoomID {
			return apperror.NewValidation("stay already occupies this room").
				WithDetail("roomId", toRoomID)
		}

		dest, err := s.deps.Rooms.GetByID(ctx, toRoomID)
		if err != nil {
			return err
		}
		if dest.IsOccupied() {
			return apperror.NewStateConflict("room", string(dest.Status), "move in")
		}

		active.To = &now
		if err := s.deps.Occupancies.Close(ctx, active); err != nil {
			return err
		}

		opened = stay.NewOccupancy(stayID, toRoomID, now, reason, actor)
		if err := s.deps.Occupancies.Create(ctx, opened); err != nil {
			return err
		}

		prev, err := s.deps.Rooms.GetByID(ctx, active.RoomID)
		if err != nil {
			return err
		}
		prev.Status = room.StatusCleaning
		prev.UpdatedAt = time.Now().UTC()
		if err := s.deps.Rooms.Update(ctx, prev); err != nil {
			return err
		}
		dest.Status = room.StatusOccupied
		dest.UpdatedAt = time.Now().UTC()
		if err := s.deps.Rooms.Update(ctx, dest); err != nil {
			return err
		}

		return s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
			audit.ActionRoomMove, actor, map[string]any{
				"fromRoomId": active.RoomID,
				"toRoomId":   toRoomID,
				"reason":     reason,
			}))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "room move completed", "stay_id", stayID, "to_room_id", toRoomID)
	return opened, nil
}

// ExtendStay pushes the planned checkout to a later date.
func (s *Service) ExtendStay(ctx context.Context, stayID id.ID, newCheckout time.Time, reason string) (*stay.Stay, error) {
	actor := appctx.Actor(ctx)

	var updated *stay.Stay
	err := s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.deps.Stays.GetByID(ctx, stayID)
		if err != nil {
			return err
		}
		if !st.IsActive() {
			return apperror.NewStateConflict(StayEntityType, string(st.State), "extend stay")
		}
		res, err := s.deps.Reservations.GetByID(ctx, st.ReservationID)
		if err != nil {
			return err
		}

		current := res.CheckOut
		if st.CheckOutPlanned != nil {
			current = *st.CheckOutPlanned
		}
		if !clock.DateOf(newCheckout).After(clock.DateOf(current)) {
			return apperror.NewValidation("new checkout must be after the current planned checkout").
				WithDetail("current", current).
				WithDetail("requested", newCheckout)
		}

		st.CheckOutPlanned = &newCheckout
		st.UpdatedAt = time.Now().UTC()
		if err := s.deps.Stays.Update(ctx, st); err != nil {
			return err
		}

		res.CheckOut = newCheckout
		res.UpdatedAt = time.Now().UTC()
		if err := s.deps.Reservations.Update(ctx, res); err != nil {
			return err
		}

		if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
			audit.ActionExtendStay, actor, map[string]any{
				"previousCheckout": current,
				"newCheckout":      newCheckout,
				"reason":           reason,
			})); err != nil {
			return err
		}

		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stay extended", "stay_id", stayID, "new_checkout", newCheckout)
	return updated, nil
}

// AddCharge appends one line to the charge ledger.
func (s *Service) AddCharge(ctx context.Context, stayID id.ID, kind stay.ChargeKind,
	qty types.Quantity, unitAmount types.Money, description string) (*stay.Charge, error) {

	actor := appctx.Actor(ctx)

	var created *stay.Charge
	err := s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.deps.Stays.GetByID(ctx, stayID)
		if err != nil {
			return err
		}
		if st.IsClosed() {
			return apperror.NewStateConflict(StayEntityType, string(st.State), "add charge")
		}

		c := stay.NewCharge(stayID, kind, qty, unitAmount, description, actor)
		if err := c.Validate(ctx); err != nil {
			return err
		}
		if err := s.deps.Charges.Create(ctx, c); err != nil {
			return err
		}

		if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
			audit.ActionCharge, actor, map[string]any{
				"chargeId": c.ID, "kind": kind, "total": c.TotalAmount, "description": description,
			})); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RegisterPayment appends one entry to the payment ledger.
func (s *Service) RegisterPayment(ctx context.Context, stayID id.ID, amount types.Money,
	method stay.PaymentMethod, reference string) (*stay.Payment, error) {

	actor := appctx.Actor(ctx)

	var created *stay.Payment
	err := s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.deps.Stays.GetByID(ctx, stayID)
		if err != nil {
			return err
		}
		if st.IsClosed() {
			return apperror.NewStateConflict(StayEntityType, string(st.State), "register payment")
		}

		p := stay.NewPayment(stayID, amount, method, reference, actor)
		if err := p.Validate(ctx); err != nil {
			return err
		}
		if err := s.deps.Payments.Create(ctx, p); err != nil {
			return err
		}

		if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
			audit.ActionPayment, actor, map[string]any{
				"paymentId": p.ID, "amount": amount, "method": method,
			})); err != nil {
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReversePayment nets out a prior payment with an offsetting entry. Ledger
// rows are never deleted; both entries stay flagged.
func (s *Service) ReversePayment(ctx context.Context, paymentID id.ID, reason string) (*stay.Payment, error) {
	if reason == "" {
		return nil, apperror.NewValidation("reversal reason is required").
			WithDetail("field", "reason")
	}
	actor := appctx.Actor(ctx)

	var reversalEntry *stay.Payment
	err := s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		original, err := s.deps.Payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if original.IsReversal {
			return apperror.NewStateConflict("payment", "reversed", "reverse")
		}

		reversalEntry = original.Reverse(reason, actor)
		if err := s.deps.Payments.Create(ctx, reversalEntry); err != nil {
			return err
		}
		if err := s.deps.Payments.MarkReversed(ctx, original.ID); err != nil {
			return err
		}

		return s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, original.StayID,
			audit.ActionPaymentReversal, actor, map[string]any{
				"paymentId":  original.ID,
				"reversalId": reversalEntry.ID,
				"amount":     original.Amount,
				"reason":     reason,
			}))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment reversed", "payment_id", paymentID)
	return reversalEntry, nil
}

// CheckoutOptions are the knobs for closing a stay.
type CheckoutOptions struct {
	// FinalPayment is registered before the balance check
	FinalPayment       *types.Money
	FinalPaymentMethod stay.PaymentMethod

	// AllowCloseWithDebt authorizes closing with a positive balance
	AllowCloseWithDebt bool

	Overrides billing.Overrides
	Notes     string
}

// CheckoutResult is what checkout hands back, also on idempotent repeats.
type CheckoutResult struct {
	Stay          *stay.Stay         `json:"stay"`
	Invoice       *billing.Invoice   `json:"invoice"`
	CleaningTask  *housekeeping.Task `json:"cleaningTask,omitempty"`
	AlreadyClosed bool               `json:"alreadyClosed"`
}

// Checkout closes a stay. The stay row is locked for the whole transaction
// so concurrent checkouts of the same stay serialize; the loser observes the
// closed state and gets the idempotent response.
func (s *Service) Checkout(ctx context.Context, stayID id.ID, opts CheckoutOptions) (*CheckoutResult, error) {
	now, cfg, err := s.hotelNow(ctx)
	if err != nil {
		return nil, err
	}
	actor := appctx.Actor(ctx)

	var result *CheckoutResult
	err = s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.deps.Stays.LockByID(ctx, stayID)
		if err != nil {
			return err
		}

		if st.IsClosed() {
			inv, err := s.computeInvoice(ctx, st, billing.Overrides{}, now, cfg)
			if err != nil {
				return err
			}
			task, err := s.deps.Housekeeping.GetByStay(ctx, stayID)
			if err != nil && !apperror.IsNotFound(err) {
				return err
			}
			result = &CheckoutResult{Stay: st, Invoice: inv, CleaningTask: task, AlreadyClosed: true}
			return nil
		}

		if !st.IsActive() {
			return apperror.NewStateConflict(StayEntityType, string(st.State), "checkout")
		}

		if opts.FinalPayment != nil && opts.FinalPayment.IsPositive() {
			method := opts.FinalPaymentMethod
			if method == "" {
				method = stay.PaymentCash
			}
			p := stay.NewPayment(stayID, *opts.FinalPayment, method, "checkout", actor)
			if err := p.Validate(ctx); err != nil {
				return err
			}
			if err := s.deps.Payments.Create(ctx, p); err != nil {
				return err
			}
			if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
				audit.ActionPayment, actor, map[string]any{
					"paymentId": p.ID, "amount": p.Amount, "method": method,
				})); err != nil {
				return err
			}
		}

		inv, err := s.computeInvoice(ctx, st, opts.Overrides, now, cfg)
		if err != nil {
			return err
		}
		if inv.HasBlockingError() {
			return apperror.NewDataIntegrity("cannot close the stay: no nightly rate could be resolved")
		}
		if inv.Balance.IsPositive() && !opts.AllowCloseWithDebt {
			return apperror.NewBalanceDue(inv.Balance.String())
		}

		checkoutTime := now
		if opts.Overrides.CheckoutDate != nil {
			checkoutTime = opts.Overrides.CheckoutDate.In(cfg.Location())
		}

		occupancies, err := s.deps.Occupancies.ListByStay(ctx, stayID)
		if err != nil {
			return err
		}
		for _, occ := range occupancies {
			if !occ.IsActive() {
				continue
			}
			occ.To = &checkoutTime
			if err := s.deps.Occupancies.Close(ctx, occ); err != nil {
				return err
			}
			rm, err := s.deps.Rooms.GetByID(ctx, occ.RoomID)
			if err != nil {
				return err
			}
			rm.Status = room.StatusCleaning
			rm.UpdatedAt = time.Now().UTC()
			if err := s.deps.Rooms.Update(ctx, rm); err != nil {
				return err
			}
		}

		st.CheckOutReal = &checkoutTime
		if opts.Notes != "" {
			st.InternalNotes = opts.Notes
		}
		if err := st.TransitionTo(stay.StateClosed, "checkout"); err != nil {
			return err
		}
		if err := s.deps.Stays.Update(ctx, st); err != nil {
			return err
		}

		res, err := s.deps.Reservations.GetByID(ctx, st.ReservationID)
		if err != nil {
			return err
		}
		if err := res.TransitionTo(reservation.StateClosed, "checkout"); err != nil {
			return err
		}
		if err := s.deps.Reservations.Update(ctx, res); err != nil {
			return err
		}

		// One cleaning job per stay: the room most recently entered, keyed
		// on (room, date, type) so retries land on the same row.
		var task *housekeeping.Task
		if last := stay.LatestOccupancy(occupancies); last != nil {
			task, err = s.deps.Housekeeping.Upsert(ctx, housekeeping.NewCheckoutTask(
				last.RoomID, stayID, st.ReservationID, clock.DateOf(checkoutTime)))
			if err != nil {
				return err
			}
		}

		if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
			audit.ActionCheckout, actor, map[string]any{
				"checkOutReal":   checkoutTime,
				"grandTotal":     inv.GrandTotal,
				"paymentsTotal":  inv.PaymentsTotal,
				"balance":        inv.Balance,
				"closedWithDebt": inv.Balance.IsPositive(),
			})); err != nil {
			return err
		}

		result = &CheckoutResult{Stay: st, Invoice: inv, CleaningTask: task}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyClosed {
		logger.Info(ctx, "checkout repeated on closed stay", "stay_id", stayID)
	} else {
		logger.Info(ctx, "stay checked out",
			"stay_id", stayID, "balance", result.Invoice.Balance.String())
	}
	return result, nil
}

// Reopen reverts a closed stay to occupied. Privileged; the ledgers are
// never touched, only the lifecycle state.
func (s *Service) Reopen(ctx context.Context, stayID id.ID, reason string) (*stay.Stay, error) {
	if reason == "" {
		return nil, apperror.NewValidation("reopen reason is required").
			WithDetail("field", "reason")
	}
	if !appctx.IsAdmin(ctx) {
		return nil, apperror.NewForbidden("reopening a closed stay requires admin privileges")
	}
	now, _, err := s.hotelNow(ctx)
	if err != nil {
		return nil, err
	}
	actor := appctx.Actor(ctx)

	var reopened *stay.Stay
	err = s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.deps.Stays.LockByID(ctx, stayID)
		if err != nil {
			return err
		}
		previousCheckout := st.CheckOutReal
		if err := st.TransitionTo(stay.StateOccupied, "reopen"); err != nil {
			return err
		}
		st.CheckOutReal = nil
		if err := s.deps.Stays.Update(ctx, st); err != nil {
			return err
		}

		res, err := s.deps.Reservations.GetByID(ctx, st.ReservationID)
		if err != nil {
			return err
		}
		if err := res.TransitionTo(reservation.StateOccupied, "reopen"); err != nil {
			return err
		}
		if err := s.deps.Reservations.Update(ctx, res); err != nil {
			return err
		}

		// Resume occupancy in the room the stay last held.
		occupancies, err := s.deps.Occupancies.ListByStay(ctx, stayID)
		if err != nil {
			return err
		}
		last := stay.LatestOccupancy(occupancies)
		if last == nil {
			return apperror.NewDataIntegrity("stay has no occupancy history to reopen into")
		}
		occ := stay.NewOccupancy(stayID, last.RoomID, now, "reopen", actor)
		if err := s.deps.Occupancies.Create(ctx, occ); err != nil {
			return err
		}
		rm, err := s.deps.Rooms.GetByID(ctx, last.RoomID)
		if err != nil {
			return err
		}
		rm.Status = room.StatusOccupied
		rm.UpdatedAt = time.Now().UTC()
		if err := s.deps.Rooms.Update(ctx, rm); err != nil {
			return err
		}

		if err := s.deps.Audit.Record(ctx, audit.NewEvent(StayEntityType, stayID,
			audit.ActionReopen, actor, map[string]any{
				"reason":           reason,
				"previousCheckout": previousCheckout,
				"roomId":           last.RoomID,
			})); err != nil {
			return err
		}

		reopened = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stay reopened", "stay_id", stayID, "reason", reason)
	return reopened, nil
}

// InvoicePreview computes the invoice without mutating anything. Overrides
// are request-scoped and never persisted.
func (s *Service) InvoicePreview(ctx context.Context, stayID id.ID, overrides billing.Overrides) (*billing.Invoice, error) {
	now, cfg, err := s.hotelNow(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.deps.Stays.GetByID(ctx, stayID)
	if err != nil {
		return nil, err
	}
	return s.computeInvoice(ctx, st, overrides, now, cfg)
}

// OverstayStatus evaluates the overstay engine for one stay.
func (s *Service) OverstayStatus(ctx context.Context, stayID id.ID) (*overstay.Result, error) {
	now, cfg, err := s.hotelNow(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.deps.Stays.GetByID(ctx, stayID)
	if err != nil {
		return nil, err
	}
	res, err := s.deps.Reservations.GetByID(ctx, st.ReservationID)
	if err != nil {
		return nil, err
	}
	result := overstay.Evaluate(overstay.Input{
		Stay:        st,
		Reservation: res,
		Settings:    *cfg,
		Now:         now,
	})
	return &result, nil
}

// GetStay fetches a stay by ID.
func (s *Service) GetStay(ctx context.Context, stayID id.ID) (*stay.Stay, error) {
	return s.deps.Stays.GetByID(ctx, stayID)
}

// ListStays returns stays matching the filter.
func (s *Service) ListStays(ctx context.Context, filter stay.ListFilter) (domain.ListResult[*stay.Stay], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	return s.deps.Stays.List(ctx, filter)
}

// ListCharges returns the charge ledger of a stay.
func (s *Service) ListCharges(ctx context.Context, stayID id.ID) ([]*stay.Charge, error) {
	return s.deps.Charges.ListByStay(ctx, stayID)
}

// ListPayments returns the payment ledger of a stay.
func (s *Service) ListPayments(ctx context.Context, stayID id.ID) ([]*stay.Payment, error) {
	return s.deps.Payments.ListByStay(ctx, stayID)
}

// ListOccupancies returns the occupancy history of a stay.
func (s *Service) ListOccupancies(ctx context.Context, stayID id.ID) ([]*stay.RoomOccupancy, error) {
	return s.deps.Occupancies.ListByStay(ctx, stayID)
}

// History returns the audit trail for a stay, oldest first.
func (s *Service) History(ctx context.Context, stayID id.ID) ([]audit.Event, error) {
	return s.deps.Audit.ListByEntity(ctx, StayEntityType, stayID)
}

// PendingCleaningTasks returns the cleaning backlog for a hotel-local date.
// A zero date means today.
func (s *Service) PendingCleaningTasks(ctx context.Context, date time.Time) ([]*housekeeping.Task, error) {
	if date.IsZero() {
		now, _, err := s.hotelNow(ctx)
		if err != nil {
			return nil, err
		}
		date = clock.DateOf(now)
	}
	return s.deps.Housekeeping.ListPending(ctx, date)
}

// SetCleaningTaskStatus transitions a cleaning task.
func (s *Service) SetCleaningTaskStatus(ctx context.Context, taskID id.ID, status housekeeping.TaskStatus) error {
	return s.deps.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.deps.Housekeeping.SetStatus(ctx, taskID, status)
	})
}

// computeInvoice loads the full snapshot and runs the pure engine over it.
func (s *Service) computeInvoice(ctx context.Context, st *stay.Stay,
	overrides billing.Overrides, now time.Time, cfg *settings.HotelSettings) (*billing.Invoice, error) {

	res, err := s.deps.Reservations.GetByID(ctx, st.ReservationID)
	if err != nil {
		return nil, err
	}
	occupancies, err := s.deps.Occupancies.ListByStay(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	charges, err := s.deps.Charges.ListByStay(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.deps.Payments.ListByStay(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	in := billing.Input{
		Reservation: res,
		Stay:        st,
		Occupancies: occupancies,
		Charges:     charges,
		Payments:    payments,
		Settings:    *cfg,
		Overrides:   overrides,
		Now:         now,
	}

	if last := stay.LatestOccupancy(occupancies); last != nil {
		rm, err := s.deps.Rooms.GetByID(ctx, last.RoomID)
		if err != nil {
			return nil, err
		}
		rt, err := s.deps.RoomTypes.GetByID(ctx, rm.RoomTypeID)
		if err != nil {
			return nil, err
		}
		in.Room = rm
		in.RoomType = rt
	}

	if res.GuestID != nil {
		g, err := s.deps.Guests.GetByID(ctx, *res.GuestID)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
		in.Guest = g
	}
	if in.Guest == nil && res.CompanyID != nil {
		c, err := s.deps.Companies.GetByID(ctx, *res.CompanyID)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
		in.Company = c
	}

	return s.engine.Compute(in)
}
