// Package dateutil holds calendar-date helpers. Every value is a UTC
// midnight time.Time; wall clock parts are discarded on the way in.
package dateutil

import (
	"time"
)

const (
	Layout        = "2006-01-02"
	DisplayLayout = "02/01/2006"
)

// Parse reads a YYYY-MM-DD date.
func Parse(v string) (time.Time, error) {
	t, err := time.Parse(Layout, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return Date(now())
}

// AddYears moves t by n years keeping the day of month, clamped to the
// last day of the target month (Feb 29 + 1y = Feb 28).
func AddYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	last := daysIn(y+n, m)
	if d > last {
		d = last
	}
	return time.Date(y+n, m, d, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time {
	return Date(t).AddDate(0, 0, n)
}

// DaysInclusive counts calendar days in [start, end]. It is <= 0 when end
// precedes start.
func DaysInclusive(start, end time.Time) int {
	return int(Date(end).Sub(Date(start)).Hours()/24) + 1
}

// Overlaps reports whether two inclusive ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Date(aStart).After(Date(bEnd)) && !Date(aEnd).Before(Date(bStart))
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
