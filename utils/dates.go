package utils

import "time"

// DayLayout is the calendar-day format used for dedup keys and date input.
const DayLayout = "2006-01-02"

// Today returns the current calendar day, midnight UTC.
func Today() time.Time {
	return TruncateToDay(time.Now())
}

// TruncateToDay normalizes t to midnight UTC of its calendar day.
func TruncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey renders the calendar day of t as "2006-01-02" in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay parses a "2006-01-02" date into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// DaysBetween returns the whole calendar days from 'from' until 'to'.
// Negative when 'to' is in the past.
func DaysBetween(from, to time.Time) int {
	return int(TruncateToDay(to).Sub(TruncateToDay(from)).Hours() / 24)
}
