package reservation

import (
	"context"
	"time"

	"posada/internal/core/apperror"
	appctx "posada/internal/core/context"
	"posada/internal/core/id"
	"posada/internal/core/tx"
	"posada/internal/domain"
	"posada/internal/domain/audit"
	"posada/pkg/logger"
)

// EntityType is the audit trail entity key for reservations.
const EntityType = "reservation"

// Service provides the reservation lifecycle operations. Every mutating
// operation commits its audit event in the same transaction.
type Service struct {
	repo      Repository
	auditlog  audit.Recorder
	txManager tx.Manager
}

// NewService creates a reservation service.
func NewService(repo Repository, auditlog audit.Recorder, txManager tx.Manager) *Service {
	return &Service{repo: repo, auditlog: auditlog, txManager: txManager}
}

// Create validates and persists a new reservation in draft or confirmed state.
func (s *Service) Create(ctx context.Context, r *Reservation) error {
	if r.State == "" {
		r.State = StateDraft
	}
	if r.State != StateDraft && r.State != StateConfirmed {
		return apperror.NewValidation("reservations are created in draft or confirmed state").
			WithDetail("state", string(r.State))
	}
	if err := r.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, r); err != nil {
			return err
		}
		return s.auditlog.Record(ctx, audit.NewEvent(EntityType, r.ID, audit.ActionCreate,
			appctx.Actor(ctx), map[string]any{
				"state":    r.State,
				"checkIn":  r.CheckIn,
				"checkOut": r.CheckOut,
			}))
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "reservation created", "id", r.ID, "state", r.State)
	return nil
}

// Update persists changes to holder fields, dates, notes. Only editable
// states accept updates.
func (s *Service) Update(ctx context.Context, r *Reservation) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, r.ID)
		if err != nil {
			return err
		}
		if !current.IsEditable() {
			return apperror.NewStateConflict(EntityType, string(current.State), "update")
		}
		r.State = current.State
		r.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, r); err != nil {
			return err
		}
		return s.auditlog.Record(ctx, audit.NewEvent(EntityType, r.ID, audit.ActionUpdate,
			appctx.Actor(ctx), nil))
	})
}

// Confirm moves a draft reservation to confirmed.
func (s *Service) Confirm(ctx context.Context, reservationID id.ID) (*Reservation, error) {
	return s.transition(ctx, reservationID, StateConfirmed, "confirm", audit.ActionConfirm, nil)
}

// Cancel terminates a reservation before check-in, recording why and by whom.
func (s *Service) Cancel(ctx context.Context, reservationID id.ID, reason string) (*Reservation, error) {
	if reason == "" {
		return nil, apperror.NewValidation("cancellation reason is required").
			WithDetail("field", "reason")
	}
	now := time.Now().UTC()
	actor := appctx.Actor(ctx)
	return s.transition(ctx, reservationID, StateCancelled, "cancel", audit.ActionCancel,
		func(r *Reservation) {
			r.CancelReason = reason
			r.CancelledAt = &now
			r.CancelledBy = actor
		})
}

// MarkNoShow terminates a reservation whose guest never arrived.
func (s *Service) MarkNoShow(ctx context.Context, reservationID id.ID) (*Reservation, error) {
	return s.transition(ctx, reservationID, StateNoShow, "mark no-show", audit.ActionNoShow, nil)
}

// transition is the shared table-driven state change path.
func (s *Service) transition(ctx context.Context, reservationID id.ID, to State, operation string,
	action audit.Action, mutate func(*Reservation)) (*Reservation, error) {

	var result *Reservation
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		r, err := s.repo.GetByID(ctx, reservationID)
		if err != nil {
			return err
		}
		from := r.State
		if err := r.TransitionTo(to, operation); err != nil {
			return err
		}
		if mutate != nil {
			mutate(r)
		}
		if err := s.repo.Update(ctx, r); err != nil {
			return err
		}
		if err := s.auditlog.Record(ctx, audit.NewEvent(EntityType, r.ID, action,
			appctx.Actor(ctx), map[string]any{"from": from, "to": to})); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "reservation state changed", "id", result.ID, "state", result.State)
	return result, nil
}

// Get fetches a reservation by ID.
func (s *Service) Get(ctx context.Context, reservationID id.ID) (*Reservation, error) {
	return s.repo.GetByID(ctx, reservationID)
}

// List returns reservations matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Reservation], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	return s.repo.List(ctx, filter)
}

// History returns the audit trail for a reservation, oldest first.
func (s *Service) History(ctx context.Context, reservationID id.ID) ([]audit.Event, error) {
	return s.auditlog.ListByEntity(ctx, EntityType, reservationID)
}
