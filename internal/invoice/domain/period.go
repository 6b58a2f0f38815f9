package domain

import (
	"fmt"
	"time"
)

// Period is one calendar month's billing window, bounded by its first and
// last day inclusive.
type Period struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// NewPeriod computes the inclusive bounds of a calendar month. Month length
// is taken from the calendar, so leap-year February resolves to the 29th.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, ErrInvalidMonth
	}
	if year < 1 {
		return Period{}, ErrInvalidYear
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{
		Year:  year,
		Month: time.Month(month),
		Start: start,
		End:   end,
	}, nil
}

// Key is the normalized period identifier used by the per-customer
// uniqueness constraint on the calendar-month grid.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Overlaps is the interval-intersection test used to detect an already
// billed period: existing.start <= target.end AND existing.end >= target.start.
func Overlaps(existingStart, existingEnd, targetStart, targetEnd time.Time) bool {
	return !existingStart.After(targetEnd) && !existingEnd.Before(targetStart)
}
