package core

import "time"

// FilterMode selects a time window over the working set.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterThisWeek  FilterMode = "week"
	FilterThisMonth FilterMode = "month"
)

// Valid reports whether m is one of the known modes.
func (m FilterMode) Valid() bool {
	switch m {
	case FilterAll, FilterThisWeek, FilterThisMonth:
		return true
	}
	return false
}

// Includes evaluates the filter predicate for a record's date text against
// the moment now. Records whose date does not parse in canonical form are
// kept under FilterAll and excluded from the windowed modes.
func (m FilterMode) Includes(dateText string, now time.Time) bool {
	if m == FilterAll {
		return true
	}
	d, ok := ParseCanonicalDate(dateText, now.Location())
	if !ok {
		return false
	}
	switch m {
	case FilterThisWeek:
		return SameWeek(d, now)
	case FilterThisMonth:
		return SameMonth(d, now)
	}
	return true
}

// Filter returns the records passing the predicate, preserving input order.
func (m FilterMode) Filter(records []Record, now time.Time) []Record {
	if m == FilterAll {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if m.Includes(r.Date, now) {
			out = append(out, r)
		}
	}
	return out
}
