package overstay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func localTime(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, buenosAires)
}

func fixture() Input {
	checkIn := localTime(2026, 3, 10, 0, 0)
	checkOut := localTime(2026, 3, 15, 0, 0)

	res := reservation.New(checkIn, checkOut)
	res.State = reservation.StateOccupied
	res.PlaceholderName = "x"

	st := stay.New(res.ID, checkIn.Add(14*time.Hour))

	return Input{
		Stay:        st,
		Reservation: res,
		Settings:    settings.Default(),
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantStatus Status
		wantReason string
		wantDays   int
	}{
		{
			name:       "well before planned checkout",
			now:        localTime(2026, 3, 12, 18, 0),
			wantStatus: StatusNormal,
		},
		{
			name:       "checkout day one minute before cutoff",
			now:        localTime(2026, 3, 15, 11, 59),
			wantStatus: StatusNormal,
		},
		{
			name:       "checkout day exactly at cutoff",
			now:        localTime(2026, 3, 15, 12, 0),
			wantStatus: StatusOverstay,
			wantReason: ReasonTimeCutoff,
		},
		{
			name:       "checkout day after cutoff",
			now:        localTime(2026, 3, 15, 15, 30),
			wantStatus: StatusOverstay,
			wantReason: ReasonTimeCutoff,
		},
		{
			name:       "one day past planned checkout",
			now:        localTime(2026, 3, 16, 8, 0),
			wantStatus: StatusOverstay,
			wantReason: ReasonPastDate,
			wantDays:   1,
		},
		{
			name:       "three days past planned checkout",
			now:        localTime(2026, 3, 18, 9, 0),
			wantStatus: StatusOverstay,
			wantReason: ReasonPastDate,
			wantDays:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixture()
			in.Now = tt.now

			got := Evaluate(in)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantDays, got.DaysOver)

			if tt.wantReason == ReasonPastDate {
				assert.Contains(t, got.Flags, FlagCriticalOverstay)
			}
			if tt.wantReason == ReasonTimeCutoff {
				assert.Contains(t, got.Flags, FlagOverstayDetected)
				assert.NotContains(t, got.Flags, FlagCriticalOverstay)
				assert.Equal(t, "12:00", got.Cutoff)
			}
		})
	}
}

func TestEvaluate_InactiveStaysAreNormal(t *testing.T) {
	in := fixture()
	in.Now = localTime(2026, 3, 20, 10, 0) // long past planned checkout
	in.Stay.State = stay.StateClosed

	assert.Equal(t, StatusNormal, Evaluate(in).Status)
}

func TestEvaluate_RealCheckoutIsNormal(t *testing.T) {
	in := fixture()
	in.Now = localTime(2026, 3, 20, 10, 0)
	out := localTime(2026, 3, 15, 11, 0)
	in.Stay.CheckOutReal = &out

	assert.Equal(t, StatusNormal, Evaluate(in).Status)
}

func TestEvaluate_ExtendedStayUsesNewDate(t *testing.T) {
	in := fixture()
	extended := localTime(2026, 3, 20, 0, 0)
	in.Stay.CheckOutPlanned = &extended
	in.Now = localTime(2026, 3, 16, 14, 0) // past original date, before extension

	got := Evaluate(in)
	require.Equal(t, StatusNormal, got.Status)
	assert.Equal(t, extended, got.PlannedCheckout)
}

func TestEvaluate_CustomCutoff(t *testing.T) {
	in := fixture()
	in.Settings.CheckoutHour = 10
	in.Settings.CheckoutMinute = 30

	in.Now = localTime(2026, 3, 15, 10, 29)
	assert.Equal(t, StatusNormal, Evaluate(in).Status)

	in.Now = localTime(2026, 3, 15, 10, 30)
	got := Evaluate(in)
	assert.Equal(t, StatusOverstay, got.Status)
	assert.Equal(t, "10:30", got.Cutoff)
}
