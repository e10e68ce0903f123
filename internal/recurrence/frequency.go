package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency defines how often a rule fires.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyCustom    Frequency = "custom"
)

// CustomFrequency narrows generation to dates matching every configured set.
// Conventions follow the stored form: days of week 0-6 with Sunday = 0,
// months of year 0-11 with January = 0.
type CustomFrequency struct {
	DaysOfWeek   []int
	DatesOfMonth []int
	MonthsOfYear []int
	TimeOfDay    string // HH:MM, optional
}

func (c CustomFrequency) empty() bool {
	return len(c.DaysOfWeek) == 0 && len(c.DatesOfMonth) == 0 && len(c.MonthsOfYear) == 0
}

// lookaheadDays bounds the custom-date search to two years.
const lookaheadDays = 731

// ComputeNext returns the first occurrence strictly after current.
// Fixed frequencies add a calendar-correct interval; month and year steps
// clamp the day to the end of the target month (Jan 31 + 1 month = Feb 28/29).
// Custom frequencies return the earliest date after current satisfying all
// configured predicates, or ErrNoFeasibleDate if none exists within the
// lookahead window.
func ComputeNext(current time.Time, freq Frequency, custom *CustomFrequency) (time.Time, error) {
	switch freq {
	case FrequencyDaily:
		return current.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		return current.AddDate(0, 0, 7), nil
	case FrequencyBiweekly:
		return current.AddDate(0, 0, 14), nil
	case FrequencyMonthly:
		return addMonthsClamped(current, 1), nil
	case FrequencyQuarterly:
		return addMonthsClamped(current, 3), nil
	case FrequencyYearly:
		return addMonthsClamped(current, 12), nil
	case FrequencyCustom:
		if custom == nil {
			return time.Time{}, fmt.Errorf("%w: custom frequency without predicates", ErrInvalidFrequencyConfig)
		}
		return nextCustomDate(current, *custom)
	default:
		return time.Time{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidFrequencyConfig, freq)
	}
}

// Validate checks a frequency configuration eagerly so ticks never discover a
// broken rule. ref anchors the feasibility lookahead for custom predicates.
func Validate(freq Frequency, custom *CustomFrequency, ref time.Time) error {
	switch freq {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return nil
	case FrequencyCustom:
		if custom == nil {
			return fmt.Errorf("%w: custom frequency without predicates", ErrInvalidFrequencyConfig)
		}
		if err := validateCustom(*custom); err != nil {
			return err
		}
		if _, err := nextCustomDate(ref, *custom); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidFrequencyConfig, freq)
	}
}

func validateCustom(custom CustomFrequency) error {
	for _, d := range custom.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day of week %d out of range 0-6", ErrInvalidFrequencyConfig, d)
		}
	}
	for _, d := range custom.DatesOfMonth {
		if d < 1 || d > 31 {
			return fmt.Errorf("%w: date of month %d out of range 1-31", ErrInvalidFrequencyConfig, d)
		}
	}
	for _, m := range custom.MonthsOfYear {
		if m < 0 || m > 11 {
			return fmt.Errorf("%w: month %d out of range 0-11", ErrInvalidFrequencyConfig, m)
		}
	}
	if custom.TimeOfDay != "" {
		if _, _, err := ParseTimeOfDay(custom.TimeOfDay); err != nil {
			return err
		}
	}
	return nil
}

func nextCustomDate(current time.Time, custom CustomFrequency) (time.Time, error) {
	if err := validateCustom(custom); err != nil {
		return time.Time{}, err
	}

	// No predicates configured: behave as next calendar day.
	if custom.empty() {
		next := current.AddDate(0, 0, 1)
		return applyTimeOfDay(next, custom.TimeOfDay, current), nil
	}

	day := time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, current.Location())
	for i := 0; i <= lookaheadDays; i++ {
		if matchesCustom(day, custom) {
			candidate := applyTimeOfDay(day, custom.TimeOfDay, current)
			if candidate.After(current) {
				return candidate, nil
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, ErrNoFeasibleDate
}

func matchesCustom(day time.Time, custom CustomFrequency) bool {
	if len(custom.DaysOfWeek) > 0 && !containsInt(custom.DaysOfWeek, int(day.Weekday())) {
		return false
	}
	if len(custom.DatesOfMonth) > 0 && !containsInt(custom.DatesOfMonth, day.Day()) {
		return false
	}
	if len(custom.MonthsOfYear) > 0 && !containsInt(custom.MonthsOfYear, int(day.Month())-1) {
		return false
	}
	return true
}

// applyTimeOfDay sets the clock on day from timeStr, or carries over the
// reference clock when no time is configured.
func applyTimeOfDay(day time.Time, timeStr string, ref time.Time) time.Time {
	if timeStr == "" {
		return time.Date(day.Year(), day.Month(), day.Day(), ref.Hour(), ref.Minute(), ref.Second(), 0, day.Location())
	}
	hour, minute, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(timeStr string) (hour, minute int, err error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidFrequencyConfig, timeStr)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: invalid hour in %q", ErrInvalidFrequencyConfig, timeStr)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: invalid minute in %q", ErrInvalidFrequencyConfig, timeStr)
	}
	return hour, minute, nil
}

// addMonthsClamped adds calendar months, clamping the day of month instead of
// letting it overflow into the next month the way AddDate would.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysInMonth(first.Month(), first.Year()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysInMonth(month time.Month, year int) int {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
