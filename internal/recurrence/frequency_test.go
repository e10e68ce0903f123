package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestComputeNextFixedIntervals(t *testing.T) {
	start := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		freq Frequency
		want time.Time
	}{
		{FrequencyDaily, start.AddDate(0, 0, 1)},
		{FrequencyWeekly, start.AddDate(0, 0, 7)},
		{FrequencyBiweekly, start.AddDate(0, 0, 14)},
		{FrequencyMonthly, time.Date(2025, time.April, 10, 9, 30, 0, 0, time.UTC)},
		{FrequencyQuarterly, time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)},
		{FrequencyYearly, time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			got, err := ComputeNext(start, tt.freq, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeNextMonthlyClampsToEndOfMonth(t *testing.T) {
	// 2024 is a leap year.
	got, err := ComputeNext(date(2024, time.January, 31), FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), got)

	got, err = ComputeNext(date(2023, time.January, 31), FrequencyMonthly, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.February, 28), got)
}

func TestComputeNextQuarterlyClamps(t *testing.T) {
	got, err := ComputeNext(date(2025, time.March, 31), FrequencyQuarterly, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.June, 30), got)
}

func TestComputeNextYearlyLeapDay(t *testing.T) {
	got, err := ComputeNext(date(2024, time.February, 29), FrequencyYearly, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.February, 28), got)
}

func TestComputeNextStrictlyIncreasing(t *testing.T) {
	frequencies := []Frequency{
		FrequencyDaily, FrequencyWeekly, FrequencyBiweekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly,
	}
	for _, freq := range frequencies {
		t.Run(string(freq), func(t *testing.T) {
			current := date(2024, time.January, 31)
			for i := 0; i < 24; i++ {
				next, err := ComputeNext(current, freq, nil)
				require.NoError(t, err)
				assert.True(t, next.After(current), "step %d: %s not after %s", i, next, current)
				current = next
			}
		})
	}
}

func TestComputeNextCustomDayOfWeek(t *testing.T) {
	// 2025-01-01 is a Wednesday; next Monday is 2025-01-06.
	current := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	custom := &CustomFrequency{DaysOfWeek: []int{1}}

	got, err := ComputeNext(current, FrequencyCustom, custom)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC), got)
}

func TestComputeNextCustomSameDayLaterTime(t *testing.T) {
	// A configured time later today still counts as strictly after current.
	current := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC) // Wednesday
	custom := &CustomFrequency{DaysOfWeek: []int{3}, TimeOfDay: "09:00"}

	got, err := ComputeNext(current, FrequencyCustom, custom)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC), got)
}

func TestComputeNextCustomDateAndMonth(t *testing.T) {
	// 15th of April (month index 3).
	current := time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)
	custom := &CustomFrequency{DatesOfMonth: []int{15}, MonthsOfYear: []int{3}, TimeOfDay: "08:00"}

	got, err := ComputeNext(current, FrequencyCustom, custom)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 15, 8, 0, 0, 0, time.UTC), got)
}

func TestComputeNextCustomNoPredicatesActsAsDaily(t *testing.T) {
	current := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)

	got, err := ComputeNext(current, FrequencyCustom, &CustomFrequency{})
	require.NoError(t, err)
	assert.Equal(t, current.AddDate(0, 0, 1), got)
}

func TestComputeNextCustomInfeasible(t *testing.T) {
	// February 30th never exists.
	custom := &CustomFrequency{DatesOfMonth: []int{30}, MonthsOfYear: []int{1}}

	_, err := ComputeNext(date(2025, time.January, 1), FrequencyCustom, custom)
	assert.ErrorIs(t, err, ErrNoFeasibleDate)
}

func TestComputeNextCustomMissingConfig(t *testing.T) {
	_, err := ComputeNext(date(2025, time.January, 1), FrequencyCustom, nil)
	assert.ErrorIs(t, err, ErrInvalidFrequencyConfig)
}

func TestComputeNextUnknownFrequency(t *testing.T) {
	_, err := ComputeNext(date(2025, time.January, 1), Frequency("hourly"), nil)
	assert.ErrorIs(t, err, ErrInvalidFrequencyConfig)
}

func TestValidate(t *testing.T) {
	ref := date(2025, time.January, 1)

	assert.NoError(t, Validate(FrequencyWeekly, nil, ref))
	assert.NoError(t, Validate(FrequencyCustom, &CustomFrequency{DaysOfWeek: []int{0, 6}}, ref))

	assert.ErrorIs(t, Validate(FrequencyCustom, nil, ref), ErrInvalidFrequencyConfig)
	assert.ErrorIs(t, Validate(Frequency("sometimes"), nil, ref), ErrInvalidFrequencyConfig)
	assert.ErrorIs(t, Validate(FrequencyCustom, &CustomFrequency{DaysOfWeek: []int{7}}, ref), ErrInvalidFrequencyConfig)
	assert.ErrorIs(t, Validate(FrequencyCustom, &CustomFrequency{DatesOfMonth: []int{0}}, ref), ErrInvalidFrequencyConfig)
	assert.ErrorIs(t, Validate(FrequencyCustom, &CustomFrequency{MonthsOfYear: []int{12}}, ref), ErrInvalidFrequencyConfig)
	assert.ErrorIs(t, Validate(FrequencyCustom, &CustomFrequency{TimeOfDay: "25:00"}, ref), ErrInvalidFrequencyConfig)
	assert.ErrorIs(t, Validate(FrequencyCustom, &CustomFrequency{DatesOfMonth: []int{30}, MonthsOfYear: []int{1}}, ref), ErrNoFeasibleDate)
}

func TestParseTimeOfDay(t *testing.T) {
	hour, minute, err := ParseTimeOfDay("09:45")
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 45, minute)

	for _, bad := range []string{"", "9", "9:5:0", "24:00", "12:60", "ab:cd"} {
		_, _, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
