package booking_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/domain/stay"
	"posada/internal/infrastructure/storage/postgres"
)

const paymentTable = "stay_payments"

var _ stay.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements stay.PaymentRepository. Entries are append-only;
// the single permitted mutation flags the original of a reversal pair.
type PaymentRepo struct {
	*BaseBookingRepo[stay.Payment]
}

// NewPaymentRepo creates a new payment ledger repository.
func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseBookingRepo: NewBaseBookingRepo[stay.Payment](
			txManager,
			paymentTable,
			postgres.ExtractDBColumns[stay.Payment](),
		),
	}
}

// MarkReversed flags a payment as reversed. Flagging twice is a conflict,
// which also serializes concurrent reversal attempts on the same entry.
func (r *PaymentRepo) MarkReversed(ctx context.Context, paymentID id.ID) error {
	q := r.Builder().
		Update(paymentTable).
		Set("is_reversal", true).
		Where(squirrel.Eq{"id": paymentID}).
		Where(squirrel.Eq{"is_reversal": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark payment reversed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewStateConflict(paymentTable, "reversed", "reverse")
	}

	return nil
}

// ListByStay returns all payments of a stay in insertion order.
func (r *PaymentRepo) ListByStay(ctx context.Context, stayID id.ID) ([]*stay.Payment, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"stay_id": stayID}).
		OrderBy("recorded_at ASC", "id ASC")

	return r.findMany(ctx, q)
}
