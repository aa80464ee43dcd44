package utils

import (
	"time"

	"github.com/fleetpay/fleetpay-backend/internal/apperrors"
)

// DateLayout is the calendar-date form used across the API and storage.
const DateLayout = "2006-01-02"

// Reporting period names accepted by the earnings summary
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// WeekStart returns the Monday of the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		day = 7 // Sunday belongs to the week that started the previous Monday
	}
	return time.Date(t.Year(), t.Month(), t.Day()-day+1, 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first of the month containing t, at midnight.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PeriodRange maps a reporting period name onto the inclusive date range
// [period start, today] as YYYY-MM-DD strings.
func PeriodRange(period string, now time.Time) (string, string, error) {
	var start time.Time
	switch period {
	case PeriodWeekly:
		start = WeekStart(now)
	case PeriodMonthly:
		start = MonthStart(now)
	default:
		return "", "", apperrors.NewValidation(`period must be "weekly" or "monthly"`)
	}
	return start.Format(DateLayout), now.Format(DateLayout), nil
}

// RangesOverlap reports whether the inclusive date ranges [aStart, aEnd]
// and [bStart, bEnd] intersect. Dates are YYYY-MM-DD strings, which
// order lexicographically.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// DateWithin reports whether date falls inside [start, end] inclusive.
func DateWithin(date, start, end string) bool {
	return date >= start && date <= end
}
