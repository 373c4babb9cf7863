package stay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posada/internal/core/apperror"
	"posada/internal/core/id"
	"posada/internal/core/types"
)

func TestStay_TransitionTable(t *testing.T) {
	all := []State{StatePendingCheckIn, StateOccupied, StatePendingCheckout, StateClosed}

	allowed := map[State]map[State]bool{
		StatePendingCheckIn:  {StateOccupied: true},
		StateOccupied:        {StatePendingCheckout: true, StateClosed: true},
		StatePendingCheckout: {StateOccupied: true, StateClosed: true},
		StateClosed:          {StateOccupied: true},
	}

	for _, from := range all {
		for _, to := range all {
			s := New(id.New(), time.Now())
			s.State = from
			err := s.TransitionTo(to, "test")
			if allowed[from][to] {
				assert.NoErrorf(t, err, "%s -> %s must be legal", from, to)
			} else {
				assert.Truef(t, apperror.IsStateConflict(err), "%s -> %s must be rejected", from, to)
				assert.Equal(t, from, s.State)
			}
		}
	}
}

func TestOccupancy_Helpers(t *testing.T) {
	stayID := id.New()
	base := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	moveAt := base.Add(24 * time.Hour)

	first := NewOccupancy(stayID, id.New(), base, "checkin", "reception")
	first.To = &moveAt
	second := NewOccupancy(stayID, id.New(), moveAt, "move", "reception")

	occupancies := []*RoomOccupancy{first, second}

	active := ActiveOccupancy(occupancies)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	latest := LatestOccupancy(occupancies)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	// with everything closed, the latest From wins
	end := moveAt.Add(24 * time.Hour)
	second.To = &end
	latest = LatestOccupancy(occupancies)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	assert.Nil(t, ActiveOccupancy(occupancies))
	assert.Nil(t, LatestOccupancy(nil))
}

func TestCharge_Validate(t *testing.T) {
	ctx := context.Background()
	stayID := id.New()

	c := NewCharge(stayID, ChargeService, types.One(), types.MustMoney("300"), "Minibar", "reception")
	assert.NoError(t, c.Validate(ctx))
	assert.True(t, c.TotalAmount.Equal(types.MustMoney("300")))

	c = NewCharge(stayID, ChargeService, types.MustMoney("2"), types.MustMoney("150"), "Breakfast", "reception")
	assert.True(t, c.TotalAmount.Equal(types.MustMoney("300")))

	c = NewCharge(stayID, "unknown", types.One(), types.MustMoney("1"), "x", "reception")
	assert.Error(t, c.Validate(ctx))

	c = NewCharge(stayID, ChargeService, types.One(), types.MustMoney("1"), "", "reception")
	assert.Error(t, c.Validate(ctx))
}

func TestPayment_ReversePair(t *testing.T) {
	ctx := context.Background()
	p := NewPayment(id.New(), types.MustMoney("2000"), PaymentCash, "ref-1", "reception")
	require.NoError(t, p.Validate(ctx))

	rev := p.Reverse("charged twice", "manager")
	assert.True(t, rev.Amount.Equal(types.MustMoney("-2000")))
	assert.True(t, rev.IsReversal)
	require.NotNil(t, rev.ReversesID)
	assert.Equal(t, p.ID, *rev.ReversesID)
	assert.Equal(t, p.StayID, rev.StayID)
	assert.NoError(t, rev.Validate(ctx), "negative amounts are legal on reversal entries")
}

func TestPayment_Validate(t *testing.T) {
	ctx := context.Background()

	p := NewPayment(id.New(), types.Zero(), PaymentCash, "", "reception")
	assert.Error(t, p.Validate(ctx), "zero amount rejected")

	p = NewPayment(id.New(), types.MustMoney("-10"), PaymentCard, "", "reception")
	assert.Error(t, p.Validate(ctx), "negative amount rejected")

	p = NewPayment(id.New(), types.MustMoney("10"), "bitcoin", "", "reception")
	assert.Error(t, p.Validate(ctx), "unknown method rejected")
}
