package booking_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"posada/internal/core/id"
	"posada/internal/domain/stay"
	"posada/internal/infrastructure/storage/postgres"
)

const chargeTable = "stay_charges"

var _ stay.ChargeRepository = (*ChargeRepo)(nil)

// ChargeRepo implements stay.ChargeRepository. The ledger is append-only,
// so the repository exposes no update path.
type ChargeRepo struct {
	*BaseBookingRepo[stay.Charge]
}

// NewChargeRepo creates a new charge ledger repository.
func NewChargeRepo(txManager *postgres.TxManager) *ChargeRepo {
	return &ChargeRepo{
		BaseBookingRepo: NewBaseBookingRepo[stay.Charge](
			txManager,
			chargeTable,
			postgres.ExtractDBColumns[stay.Charge](),
		),
	}
}

// ListByStay returns all charges of a stay in insertion order.
func (r *ChargeRepo) ListByStay(ctx context.Context, stayID id.ID) ([]*stay.Charge, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"stay_id": stayID}).
		OrderBy("created_at ASC", "id ASC")

	return r.findMany(ctx, q)
}
