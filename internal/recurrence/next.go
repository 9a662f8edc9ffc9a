// Package recurrence computes occurrence dates for recurring templates. It is
// pure calendar arithmetic: no clock, no store, no side effects.
package recurrence

import (
	"fmt"
	"time"

	"github.com/mkrall/pennywise/backend/internal/model"
)

// Next returns the occurrence that follows current for the given frequency.
// The input is normalized to midnight UTC before the arithmetic, so callers
// may pass timestamps with a time-of-day component.
//
// Monthly advancement targets the same day-of-month in the following month
// and clamps to that month's last day only when the day does not exist there
// (Jan 31 -> Feb 28, or Feb 29 in a leap year; Apr 30 -> May 30). The clamp
// does not revert: advancement always starts from the date passed in, so a
// template clamped to Feb 28 continues on the 28th. Yearly advancement keeps
// the month/day and clamps Feb 29 to Feb 28 in non-leap target years.
//
// An unknown frequency is a data-integrity fault, reported as
// model.ErrInvalidFrequency.
func Next(current time.Time, f model.Frequency) (time.Time, error) {
	cur := model.DateOnly(current)

	switch f {
	case model.FrequencyDaily:
		return cur.AddDate(0, 0, 1), nil
	case model.FrequencyWeekly:
		return cur.AddDate(0, 0, 7), nil
	case model.FrequencyMonthly:
		return addMonthClamped(cur), nil
	case model.FrequencyYearly:
		return addYearClamped(cur), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidFrequency, f)
	}
}

// addMonthClamped advances one calendar month. time.AddDate would normalize
// Jan 31 + 1 month into early March, so the target month is built explicitly
// and the day clamped to its length.
func addMonthClamped(cur time.Time) time.Time {
	y, m, d := cur.Date()
	m++
	if m > time.December {
		m = time.January
		y++
	}
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addYearClamped advances one calendar year. Only Feb 29 can need clamping.
func addYearClamped(cur time.Time) time.Time {
	y, m, d := cur.Date()
	y++
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month. Day zero of the
// following month is that month's last day.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
