package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same instant",
			from: time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			to:   time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			want: 0,
		},
		{
			name: "same date different hours",
			from: time.Date(2026, 3, 10, 23, 0, 0, 0, loc),
			to:   time.Date(2026, 3, 10, 1, 0, 0, 0, loc),
			want: 0,
		},
		{
			name: "five nights",
			from: time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			to:   time.Date(2026, 3, 15, 10, 0, 0, 0, loc),
			want: 5,
		},
		{
			name: "negative when reversed",
			from: time.Date(2026, 3, 15, 10, 0, 0, 0, loc),
			to:   time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			want: -5,
		},
		{
			name: "across month boundary",
			from: time.Date(2026, 1, 30, 22, 0, 0, 0, loc),
			to:   time.Date(2026, 2, 2, 6, 0, 0, 0, loc),
			want: 3,
		},
		{
			name: "mixed locations compare civil dates",
			from: time.Date(2026, 3, 10, 23, 0, 0, 0, loc),
			to:   time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC),
			want: 1,
		},
		{
			// East of UTC: the morning instant is the previous day in UTC,
			// but the civil dates are what count.
			name: "five nights east of UTC",
			from: time.Date(2026, 1, 10, 8, 0, 0, 0, tokyo),
			to:   time.Date(2026, 1, 15, 10, 0, 0, 0, tokyo),
			want: 5,
		},
		{
			name: "same date east of UTC",
			from: time.Date(2026, 1, 10, 7, 0, 0, 0, tokyo),
			to:   time.Date(2026, 1, 10, 23, 0, 0, 0, tokyo),
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysBetween(tc.from, tc.to))
		})
	}
}

func TestHotelClock(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	// 02:00 UTC on March 11 is still March 10 in Buenos Aires (UTC-3).
	source := Fixed{T: time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC)}
	hc := NewHotel(source, loc)

	now := hc.Now()
	assert.Equal(t, loc, now.Location())
	assert.Equal(t, 10, now.Day())

	today := hc.Today()
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), today)
}

func TestNewHotelNilLocation(t *testing.T) {
	source := Fixed{T: time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC)}
	hc := NewHotel(source, nil)
	assert.Equal(t, time.UTC, hc.Now().Location())
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(b, c))
}
