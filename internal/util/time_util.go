package util

import (
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

func TimeToDateString(t time.Time) string {
	return t.Format(layout)
}

func DateStringToTime(date string) (time.Time, error) {
	return time.Parse(layout, date)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := NewDate(t.Year(), int(t.Month())+1, 1)
	return firstOfNext.AddDate(0, 0, -1)
}

func IsEndOfMonth(t time.Time) bool {
	return t.Day() == EndOfMonth(t).Day()
}

// AddMonthsClamped adds months without day-of-month overflow. AddDate
// normalizes Mar 31 + 3mo to Jul 1; clamping keeps it at Jun 30, which
// quarter-end stepping depends on.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) + months
	firstOfTarget := NewDate(year, month, 1)
	lastDay := EndOfMonth(firstOfTarget).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(firstOfTarget.Year(), int(firstOfTarget.Month()), day)
}

// NextQuarterDate steps forward three calendar months, snapping to the
// month end so that a statement series stays on quarter boundaries.
func NextQuarterDate(t time.Time) time.Time {
	return EndOfMonth(AddMonthsClamped(t, 3))
}

// SmallestDate returns the lexicographically smallest non-empty date key,
// which is the chronologically earliest. Empty input returns "".
func SmallestDate(dates []string) string {
	smallest := ""
	for _, date := range dates {
		if date == "" {
			continue
		}
		if smallest == "" || date < smallest {
			smallest = date
		}
	}
	return smallest
}

// LargestDate returns the chronologically latest non-empty date key.
func LargestDate(dates []string) string {
	largest := ""
	for _, date := range dates {
		if date > largest {
			largest = date
		}
	}
	return largest
}
