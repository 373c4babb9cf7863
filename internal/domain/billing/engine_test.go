package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posada/internal/core/apperror"
	"posada/internal/core/types"
	"posada/internal/domain/catalogs/guest"
	"posada/internal/domain/catalogs/room"
	"posada/internal/domain/reservation"
	"posada/internal/domain/settings"
	"posada/internal/domain/stay"
)

var buenosAires = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, buenosAires)
}

// fixtureInput builds the baseline scenario: 5 planned nights at $1000,
// checked in on the planned date, evaluated on the planned checkout day.
func fixtureInput() Input {
	checkIn := localDate(2026, 3, 10)
	checkOut := localDate(2026, 3, 15)

	res := reservation.New(checkIn, checkOut)
	res.State = reservation.StateOccupied
	res.PlaceholderName = "Ana Pereyra"

	st := stay.New(res.ID, checkIn.Add(14*time.Hour))

	rt := room.NewRoomType("Standard", types.MustMoney("1000"), 2)
	rm := room.NewRoom("101", rt.ID, 1)
	rm.Status = room.StatusOccupied

	occ := stay.NewOccupancy(st.ID, rm.ID, *st.CheckInReal, "checkin", "reception")

	return Input{
		Reservation: res,
		Stay:        st,
		Occupancies: []*stay.RoomOccupancy{occ},
		Room:        rm,
		RoomType:    rt,
		Settings:    settings.Default(),
		Now:         checkOut.Add(10 * time.Hour),
	}
}

func findWarning(t *testing.T, inv *Invoice, code string) *Warning {
	t.Helper()
	for i := range inv.Warnings {
		if inv.Warnings[i].Code == code {
			return &inv.Warnings[i]
		}
	}
	return nil
}

func TestCompute_FiveNightsWithAutoTax(t *testing.T) {
	inv, err := Engine{}.Compute(fixtureInput())
	require.NoError(t, err)

	assert.Equal(t, 5, inv.PlannedNights)
	assert.Equal(t, 5, inv.CalculatedNights)
	assert.Equal(t, 5, inv.FinalNights)
	assert.Equal(t, RateSourceRoomType, inv.RateSource)
	assert.True(t, inv.RoomSubtotal.Equal(types.MustMoney("5000")), "room subtotal: %s", inv.RoomSubtotal)
	assert.True(t, inv.TaxesTotal.Equal(types.MustMoney("1050")), "taxes: %s", inv.TaxesTotal)
	assert.True(t, inv.GrandTotal.Equal(types.MustMoney("6050")), "grand total: %s", inv.GrandTotal)
	assert.True(t, inv.Balance.Equal(types.MustMoney("6050")))
	assert.NotNil(t, findWarning(t, inv, WarnBalanceDue))
	assert.False(t, inv.ReadOnly)
}

func TestCompute_NightsOverride(t *testing.T) {
	in := fixtureInput()
	nights := 3
	in.Overrides.Nights = &nights

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 5, inv.CalculatedNights, "calculated nights keep the real value")
	assert.Equal(t, 3, inv.FinalNights)
	assert.True(t, inv.GrandTotal.Equal(types.MustMoney("3630")), "grand total: %s", inv.GrandTotal)
	assert.NotNil(t, findWarning(t, inv, WarnNightsOverride))
	// calculated matches planned, so the override alone must not flag a
	// nights discrepancy
	assert.Nil(t, findWarning(t, inv, WarnNightsDiffer))
}

func TestCompute_NightsDifferComparesCalculated(t *testing.T) {
	// Guest leaves two days early: calculated 3 vs planned 5.
	in := fixtureInput()
	in.Now = localDate(2026, 3, 13).Add(10 * time.Hour)

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.PlannedNights)
	assert.Equal(t, 3, inv.CalculatedNights)
	assert.NotNil(t, findWarning(t, inv, WarnNightsDiffer))

	// An override that happens to equal planned must not hide the
	// discrepancy between calculated and planned.
	nights := 5
	in.Overrides.Nights = &nights
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.FinalNights)
	assert.NotNil(t, findWarning(t, inv, WarnNightsDiffer))
}

func TestCompute_PlannedNightsUsePlannedCheckIn(t *testing.T) {
	// Planned Mar 10-15 but the guest arrived two days late: planned
	// nights stay 5, calculated drop to 3.
	in := fixtureInput()
	late := localDate(2026, 3, 12).Add(14 * time.Hour)
	in.Stay.CheckInReal = &late
	in.Occupancies[0].From = late

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.PlannedNights)
	assert.Equal(t, 3, inv.CalculatedNights)
	assert.NotNil(t, findWarning(t, inv, WarnNightsDiffer))
}

func TestCompute_SameDayMinimumOneNight(t *testing.T) {
	in := fixtureInput()
	in.Now = localDate(2026, 3, 10).Add(18 * time.Hour) // evening of check-in day

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.CalculatedNights)
	assert.Equal(t, 1, inv.FinalNights)
	assert.True(t, inv.RoomSubtotal.Equal(types.MustMoney("1000")))
	assert.NotNil(t, findWarning(t, inv, WarnSameDayCandidate))
}

func TestCompute_PaymentsAndOverpayment(t *testing.T) {
	in := fixtureInput()
	in.Payments = []*stay.Payment{
		stay.NewPayment(in.Stay.ID, types.MustMoney("6050"), stay.PaymentCard, "", "reception"),
	}

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.Balance.IsZero(), "balance: %s", inv.Balance)
	assert.Nil(t, findWarning(t, inv, WarnBalanceDue))
	assert.Nil(t, findWarning(t, inv, WarnOverpayment))

	in.Payments = append(in.Payments,
		stay.NewPayment(in.Stay.ID, types.MustMoney("500"), stay.PaymentCash, "", "reception"))
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.Balance.Equal(types.MustMoney("-500")), "balance: %s", inv.Balance)
	assert.NotNil(t, findWarning(t, inv, WarnOverpayment))
}

func TestCompute_ReversedPaymentsExcluded(t *testing.T) {
	in := fixtureInput()
	original := stay.NewPayment(in.Stay.ID, types.MustMoney("2000"), stay.PaymentCash, "", "reception")
	reversalEntry := original.Reverse("wrong stay", "manager")
	original.IsReversal = true // original flagged once reversed
	in.Payments = []*stay.Payment{original, reversalEntry}

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.PaymentsTotal.IsZero(), "reversal pair must net to zero: %s", inv.PaymentsTotal)
}

func TestCompute_RatePriority(t *testing.T) {
	override := types.MustMoney("750")
	snapshot := types.MustMoney("900")

	tests := []struct {
		name        string
		mutate      func(in *Input)
		wantRate    types.Money
		wantSource  string
		wantBlocked bool
	}{
		{
			name: "override beats snapshot and base",
			mutate: func(in *Input) {
				in.Overrides.NightlyRate = &override
				in.Stay.RateSnapshot = &snapshot
			},
			wantRate:   override,
			wantSource: RateSourceOverride,
		},
		{
			name: "snapshot beats base",
			mutate: func(in *Input) {
				in.Stay.RateSnapshot = &snapshot
			},
			wantRate:   snapshot,
			wantSource: RateSourceSnapshot,
		},
		{
			name:       "room type base as fallback",
			mutate:     func(in *Input) {},
			wantRate:   types.MustMoney("1000"),
			wantSource: RateSourceRoomType,
		},
		{
			name: "no source at all is a blocking error",
			mutate: func(in *Input) {
				in.RoomType.BaseNightlyRate = types.Zero()
			},
			wantRate:    types.Zero(),
			wantSource:  RateSourceMissing,
			wantBlocked: true,
		},
		{
			name: "zero override is a blocking error",
			mutate: func(in *Input) {
				zero := types.Zero()
				in.Overrides.NightlyRate = &zero
			},
			wantRate:    types.Zero(),
			wantSource:  RateSourceOverride,
			wantBlocked: true,
		},
		{
			name: "zero snapshot is a blocking error",
			mutate: func(in *Input) {
				zero := types.Zero()
				in.Stay.RateSnapshot = &zero
			},
			wantRate:    types.Zero(),
			wantSource:  RateSourceSnapshot,
			wantBlocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixtureInput()
			tt.mutate(&in)

			inv, err := Engine{}.Compute(in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, inv.RateSource)
			assert.True(t, inv.NightlyRate.Equal(tt.wantRate), "rate: %s", inv.NightlyRate)
			assert.Equal(t, tt.wantBlocked, inv.HasBlockingError())
		})
	}
}

func TestCompute_ChargeBuckets(t *testing.T) {
	in := fixtureInput()
	in.Charges = []*stay.Charge{
		stay.NewCharge(in.Stay.ID, stay.ChargeService, types.One(), types.MustMoney("300"), "Minibar", "reception"),
		stay.NewCharge(in.Stay.ID, stay.ChargeFee, types.One(), types.MustMoney("50"), "Late checkout fee", "reception"),
		stay.NewCharge(in.Stay.ID, stay.ChargeDiscount, types.One(), types.MustMoney("100"), "Loyalty discount", "reception"),
	}

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)

	assert.True(t, inv.ChargesTotal.Equal(types.MustMoney("300")))
	// fee 50 + auto tax 1050
	assert.True(t, inv.TaxesTotal.Equal(types.MustMoney("1100")), "taxes: %s", inv.TaxesTotal)
	assert.True(t, inv.DiscountsTotal.Equal(types.MustMoney("100")))
	// 5000 + 300 + 1100 - 100
	assert.True(t, inv.GrandTotal.Equal(types.MustMoney("6300")), "grand total: %s", inv.GrandTotal)
}

func TestCompute_FeeDescriptionSuppressesAutoTax(t *testing.T) {
	in := fixtureInput()
	in.Charges = []*stay.Charge{
		stay.NewCharge(in.Stay.ID, stay.ChargeFee, types.One(), types.MustMoney("1050"), "IVA 21%", "reception"),
	}

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	// only the fee itself, auto tax suppressed
	assert.True(t, inv.TaxesTotal.Equal(types.MustMoney("1050")), "taxes: %s", inv.TaxesTotal)

	in.Settings.DetectTaxInFees = false
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	// detection disabled: fee plus auto tax
	assert.True(t, inv.TaxesTotal.Equal(types.MustMoney("2100")), "taxes: %s", inv.TaxesTotal)
}

func TestCompute_TaxModeOverrides(t *testing.T) {
	exempt := TaxModeExempt
	custom := TaxModeCustom
	customValue := types.MustMoney("123.45")

	in := fixtureInput()
	in.Overrides.TaxMode = &exempt
	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.TaxesTotal.IsZero())
	assert.NotNil(t, findWarning(t, inv, WarnTaxOverride))

	in = fixtureInput()
	in.Overrides.TaxMode = &custom
	in.Overrides.TaxValue = &customValue
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.TaxesTotal.Equal(customValue))

	in = fixtureInput()
	in.Overrides.TaxMode = &custom
	_, err = Engine{}.Compute(in)
	require.Error(t, err, "custom mode without a value must fail")
}

func TestCompute_DiscountPctOverride(t *testing.T) {
	pct := types.MustMoney("10")
	in := fixtureInput()
	in.Overrides.DiscountPct = &pct

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.DiscountsTotal.Equal(types.MustMoney("500")), "discounts: %s", inv.DiscountsTotal)
	// 5000 + 1050 - 500
	assert.True(t, inv.GrandTotal.Equal(types.MustMoney("5550")), "grand total: %s", inv.GrandTotal)
	assert.NotNil(t, findWarning(t, inv, WarnDiscountOverride))

	bad := types.MustMoney("101")
	in.Overrides.DiscountPct = &bad
	_, err = Engine{}.Compute(in)
	require.Error(t, err)
}

func TestCompute_CandidateBeforeCheckInFails(t *testing.T) {
	in := fixtureInput()
	early := localDate(2026, 3, 9)
	in.Overrides.CheckoutDate = &early

	_, err := Engine{}.Compute(in)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCompute_ClosedStayIsHistorical(t *testing.T) {
	in := fixtureInput()
	out := localDate(2026, 3, 10).Add(16 * time.Hour) // same-day checkout, already closed
	in.Stay.State = stay.StateClosed
	in.Stay.CheckOutReal = &out
	in.Now = localDate(2026, 4, 1) // weeks later

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.True(t, inv.ReadOnly)
	// closed stays keep the historical value, no minimum applies
	assert.Equal(t, 0, inv.CalculatedNights)
	assert.True(t, inv.RoomSubtotal.IsZero())
}

func TestCompute_GuestNamePriority(t *testing.T) {
	in := fixtureInput()
	g := guest.NewGuest("Ana", "Pereyra", "dni", "30111222")
	c := guest.NewCorporateAccount("ACME S.A.", "30-12345678-9")

	in.Guest = g
	in.Company = c
	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, g.DisplayName(), inv.GuestName)

	in.Guest = nil
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, "ACME S.A.", inv.GuestName)

	in.Company = nil
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pereyra", inv.GuestName)

	in.Reservation.PlaceholderName = ""
	inv, err = Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, "Guest", inv.GuestName)
}

func TestCompute_Deterministic(t *testing.T) {
	in := fixtureInput()
	in.Charges = []*stay.Charge{
		stay.NewCharge(in.Stay.ID, stay.ChargeService, types.One(), types.MustMoney("300"), "Minibar", "reception"),
	}
	in.Payments = []*stay.Payment{
		stay.NewPayment(in.Stay.ID, types.MustMoney("1000"), stay.PaymentCash, "", "reception"),
	}

	first, err := Engine{}.Compute(in)
	require.NoError(t, err)
	second, err := Engine{}.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompute_NoOccupancyFails(t *testing.T) {
	// Even with a recorded check-in, a stay with no occupancy rows is
	// corrupted data and must not degrade to a zero invoice.
	in := fixtureInput()
	in.Occupancies = nil

	_, err := Engine{}.Compute(in)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDataIntegrity, appErr.Code)

	in = fixtureInput()
	in.Stay.CheckInReal = nil
	in.Occupancies = nil
	_, err = Engine{}.Compute(in)
	require.Error(t, err)
}

func TestCompute_UnpricedChargeWarning(t *testing.T) {
	in := fixtureInput()
	in.Charges = []*stay.Charge{
		stay.NewCharge(in.Stay.ID, stay.ChargeService, types.One(), types.Zero(), "Parking", "reception"),
	}

	inv, err := Engine{}.Compute(in)
	require.NoError(t, err)
	w := findWarning(t, inv, WarnUnpricedCharge)
	require.NotNil(t, w)
	assert.Equal(t, SeverityWarning, w.Severity)
}
