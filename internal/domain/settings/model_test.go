package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posada/internal/core/types"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, 12, s.CheckoutHour)
	assert.Equal(t, 0, s.CheckoutMinute)
	assert.Equal(t, "America/Argentina/Buenos_Aires", s.Timezone)
	assert.True(t, s.TaxRate.Equal(types.MustMoney("0.21")))
	assert.True(t, s.DetectTaxInFees)
	assert.NoError(t, s.Validate(context.Background()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HotelSettings)
		ok     bool
	}{
		{"defaults pass", func(s *HotelSettings) {}, true},
		{"hour too high", func(s *HotelSettings) { s.CheckoutHour = 24 }, false},
		{"negative hour", func(s *HotelSettings) { s.CheckoutHour = -1 }, false},
		{"minute too high", func(s *HotelSettings) { s.CheckoutMinute = 60 }, false},
		{"negative tax", func(s *HotelSettings) { s.TaxRate = types.MustMoney("-0.1") }, false},
		{"zero tax allowed", func(s *HotelSettings) { s.TaxRate = types.Zero() }, true},
		{"bogus timezone", func(s *HotelSettings) { s.Timezone = "Mars/Olympus" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(&s)
			err := s.Validate(context.Background())
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCutoffOn(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	s := Default()
	s.CheckoutHour = 10
	s.CheckoutMinute = 30

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)
	cutoff := s.CutoffOn(date)

	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, loc), cutoff)
	assert.Equal(t, "10:30", s.CutoffString())
}
