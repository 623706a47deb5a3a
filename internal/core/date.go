package core

import (
	"time"
)

// CanonicalDateLayout is the only date shape the filters understand.
const CanonicalDateLayout = "2006-01-02"

// Today formats the current calendar date in the given location.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(CanonicalDateLayout)
}

// ParseCanonicalDate parses a strict YYYY-MM-DD date in the given location.
// Anything else, including dates that would normalize (day 32), fails.
func ParseCanonicalDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(CanonicalDateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfWeek returns midnight of the Sunday beginning the calendar week
// containing t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// SameWeek reports whether a and b fall in the same Sunday-to-Saturday week.
func SameWeek(a, b time.Time) bool {
	return StartOfWeek(a).Equal(StartOfWeek(b))
}

// SameMonth reports whether a and b share calendar year and month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
