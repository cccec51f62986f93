package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func TestAllocate_TwelveFromTuesday(t *testing.T) {
	// 2025-01-07 是周二
	got := Allocate(12, day("2025-01-07"))
	want := []string{
		"2025-01-08", "2025-01-08",
		"2025-01-10", "2025-01-10",
		"2025-01-13", "2025-01-13",
		"2025-01-15", "2025-01-15",
		"2025-01-17", "2025-01-17",
		"2025-01-20", "2025-01-20",
	}
	assert.Equal(t, want, got)
}

func TestAllocate_StartsTodayOnCadenceDay(t *testing.T) {
	// 2025-01-06 是周一
	got := Allocate(3, day("2025-01-06"))
	assert.Equal(t, []string{"2025-01-06", "2025-01-06", "2025-01-08"}, got)
}

func TestAllocate_WeekendRollsToMonday(t *testing.T) {
	got := Allocate(2, day("2025-01-11"))
	assert.Equal(t, []string{"2025-01-13", "2025-01-13"}, got)
}

func TestAllocate_Zero(t *testing.T) {
	got := Allocate(0, day("2025-01-07"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Allocate(-3, day("2025-01-07")))
}

func TestAllocate_OddCountUnderfillsLastDay(t *testing.T) {
	got := Allocate(5, day("2025-01-06"))
	require.Len(t, got, 5)
	assert.Equal(t, "2025-01-10", got[4])
	assert.NotEqual(t, got[3], got[4])
}

func TestAllocate_IgnoresLocalClock(t *testing.T) {
	// 东京周三 00:30 在 UTC 仍是周二，按调用方时区的日期算
	tokyo := time.FixedZone("JST", 9*3600)
	local := time.Date(2025, 1, 8, 0, 30, 0, 0, tokyo)
	assert.Equal(t, "2025-01-08", Allocate(1, local)[0])

	// 跨越美国夏令时切换（2025-03-09）不产生偏移
	ny := time.FixedZone("EST", -5*3600)
	got := Allocate(6, time.Date(2025, 3, 7, 23, 59, 0, 0, ny))
	assert.Equal(t, []string{"2025-03-07", "2025-03-07", "2025-03-10", "2025-03-10", "2025-03-12", "2025-03-12"}, got)
}

func TestAllocate_CadenceInvariant(t *testing.T) {
	start := day("2024-12-20")
	for offset := 0; offset < 14; offset++ {
		today := start.AddDate(0, 0, offset)
		for n := 0; n <= 25; n++ {
			got := Allocate(n, today)
			require.Len(t, got, n)

			run := 0
			for i, ds := range got {
				d, err := ParseDate(ds)
				require.NoError(t, err)
				assert.True(t, IsCadenceDay(d.Weekday()), "date %s not on cadence", ds)
				assert.False(t, d.Before(DateOnly(today)))
				if i == 0 {
					run = 1
					continue
				}
				assert.True(t, ds >= got[i-1], "dates must be non-decreasing")
				if ds == got[i-1] {
					run++
				} else {
					run = 1
				}
				assert.LessOrEqual(t, run, SlotsPerDay)
			}
		}
	}
}

func TestValidateCadenceDate(t *testing.T) {
	ok, err := ValidateCadenceDate("2025-01-10")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidateCadenceDate("2025-01-09")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ValidateCadenceDate("01/10/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
