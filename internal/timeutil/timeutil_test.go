package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	want := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, value := range []string{"", "not-a-date", "2024-13-01", "10-06-2024", "2024-06-10T12:00:00Z"} {
		if _, err := ParseDate(value); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", value, err)
		}
	}
}

func TestNewRangeOrdering(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	r, err := NewRange(start, end)
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	if !r.Start().Equal(start) || !r.End().Equal(end) {
		t.Fatalf("unexpected bounds %v..%v", r.Start(), r.End())
	}

	if _, err := NewRange(end, start); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange")
	}
	if _, err := NewRange(start, start); err != nil {
		t.Fatalf("single-day range should be valid: %v", err)
	}
}

func TestRangeContainsInclusive(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	r, err := NewRange(start, end)
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	if !r.Contains(start) || !r.Contains(end) {
		t.Fatalf("bounds must be inclusive")
	}
	if r.Contains(end.Add(time.Second)) {
		t.Fatalf("timestamp after end should be outside")
	}
	if r.Contains(start.Add(-time.Second)) {
		t.Fatalf("timestamp before start should be outside")
	}
}

func TestTruncateToDay(t *testing.T) {
	ts := time.Date(2024, 6, 10, 15, 42, 7, 0, time.UTC)
	got := TruncateToDay(ts, time.UTC)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected day start %v", got)
	}
}

func TestTruncateToWeekStartsMonday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		// Monday maps to itself.
		{time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the preceding Monday.
		{time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		// Wednesday mid-week.
		{time.Date(2024, 6, 12, 0, 0, 1, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		// Week spanning a month boundary.
		{time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC), time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := TruncateToWeek(tc.in, time.UTC); !got.Equal(tc.want) {
			t.Fatalf("TruncateToWeek(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTruncateToMonth(t *testing.T) {
	ts := time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)
	got := TruncateToMonth(ts, time.UTC)
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected month start %v", got)
	}
}

func TestEndOfDay(t *testing.T) {
	ts := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	got := EndOfDay(ts, time.UTC)
	want := time.Date(2024, 6, 10, 23, 59, 59, 999999999, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected day end %v", got)
	}
	if !got.Before(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day end must stay within the same day")
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 6, 10, 23, 0, 0, 0, time.FixedZone("x", 3600))
	if got := FormatDate(ts); got != "2024-06-10" {
		t.Fatalf("unexpected formatted date %s", got)
	}
}
