package workwindow_test

import (
	"testing"
	"time"

	"storefront-checkout/internal/domain/workwindow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Date(2025, 3, 14, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func TestIsOpen(t *testing.T) {
	cases := []struct {
		name   string
		now    string
		start  string
		end    string
		expect bool
	}{
		{name: "daytime window inside", now: "12:00", start: "10:00", end: "23:00", expect: true},
		{name: "daytime window start inclusive", now: "10:00", start: "10:00", end: "23:00", expect: true},
		{name: "daytime window end inclusive", now: "23:00", start: "10:00", end: "23:00", expect: true},
		{name: "daytime window before open", now: "09:59", start: "10:00", end: "23:00", expect: false},
		{name: "daytime window after close", now: "23:01", start: "10:00", end: "23:00", expect: false},
		{name: "overnight window late evening", now: "23:30", start: "22:00", end: "02:00", expect: true},
		{name: "overnight window after midnight", now: "01:15", start: "22:00", end: "02:00", expect: true},
		{name: "overnight window early morning closed", now: "05:00", start: "22:00", end: "02:00", expect: false},
		{name: "overnight window afternoon closed", now: "15:00", start: "22:00", end: "02:00", expect: false},
		{name: "overnight window midnight", now: "00:00", start: "22:00", end: "02:00", expect: true},
		{name: "equal bounds cover the whole day", now: "04:00", start: "09:00", end: "09:00", expect: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			open, err := workwindow.IsOpen(at(tc.now), tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, open)
		})
	}
}

func TestWrappingWindowIsUnionOfTwoRanges(t *testing.T) {
	w, err := workwindow.Parse("22:00", "02:00")
	require.NoError(t, err)

	for m := 0; m < 24*60; m++ {
		expect := m >= 22*60 || m <= 2*60
		assert.Equal(t, expect, w.ContainsMinute(m), "minute %d", m)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Run("accepts seconds suffix", func(t *testing.T) {
		tod, err := workwindow.ParseTimeOfDay("10:30:00")
		require.NoError(t, err)
		assert.Equal(t, "10:30", tod.String())
	})

	for _, bad := range []string{"", "1030", "24:00", "10:60", "ab:cd"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := workwindow.ParseTimeOfDay(bad)
			assert.ErrorIs(t, err, workwindow.ErrInvalidTimeOfDay)
		})
	}
}

func TestContainsUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	w, err := workwindow.Parse("10:00", "23:00")
	require.NoError(t, err)

	// 05:30 UTC is 10:30 at UTC+5
	now := time.Date(2025, 3, 14, 5, 30, 0, 0, time.UTC)
	assert.False(t, w.Contains(now))
	assert.True(t, w.Contains(now.In(loc)))
}
