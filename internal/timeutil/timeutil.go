package timeutil

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid date range")
)

// DateLayout is the wire format for dates exchanged with clients.
const DateLayout = "2006-01-02"

// EnsureLocation returns UTC when loc is nil.
func EnsureLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// ParseDate parses a YYYY-MM-DD value into the midnight instant of that day in UTC.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(DateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders the date portion of a timestamp in UTC.
func FormatDate(t time.Time) string {
	return t.In(time.UTC).Format(DateLayout)
}

// Range is an inclusive [start, end] timestamp range.
type Range struct {
	start time.Time
	end   time.Time
}

// NewRange validates ordering and returns the inclusive range.
func NewRange(start, end time.Time) (Range, error) {
	if start.After(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{start: start, end: end}, nil
}

// Start returns the inclusive start of the range.
func (r Range) Start() time.Time { return r.start }

// End returns the inclusive end of the range.
func (r Range) End() time.Time { return r.end }

// Contains reports whether the timestamp falls within [start, end].
func (r Range) Contains(ts time.Time) bool {
	return !ts.Before(r.start) && !ts.After(r.end)
}

// EndOfDay returns the last representable instant of the timestamp's day in
// the provided zone, so a date can close an inclusive range.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return TruncateToDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// TruncateToDay normalizes the timestamp to midnight in the provided zone.
func TruncateToDay(t time.Time, loc *time.Location) time.Time {
	loc = EnsureLocation(loc)
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// TruncateToWeek normalizes the timestamp to midnight of the ISO week start
// (Monday) in the provided zone.
func TruncateToWeek(t time.Time, loc *time.Location) time.Time {
	day := TruncateToDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// TruncateToMonth normalizes the timestamp to midnight of the first of its
// month in the provided zone.
func TruncateToMonth(t time.Time, loc *time.Location) time.Time {
	loc = EnsureLocation(loc)
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}
