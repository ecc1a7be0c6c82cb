package dateutil

import (
	"fmt"
	"time"
)

// ISODate is the canonical date format used across the planner
const ISODate = "2006-01-02"

// Day normalizes a timestamp to its calendar day (00:00:00 UTC).
// All planner computations operate on normalized days so that dates
// from different sources compare equal as map keys.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized calendar day from its components
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// YearStart returns January 1 of the given year
func YearStart(year int) time.Time {
	return Date(year, time.January, 1)
}

// YearEnd returns December 31 of the given year
func YearEnd(year int) time.Time {
	return Date(year, time.December, 31)
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same calendar day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// WeekendsOfYear returns every Saturday and Sunday of the year in
// ascending order. Usually 104 or 105 entries; a leap year starting on
// Saturday gets 106.
func WeekendsOfYear(year int) []time.Time {
	weekends := make([]time.Time, 0, 106)

	end := YearEnd(year)
	for d := YearStart(year); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			weekends = append(weekends, d)
		}
	}

	return weekends
}

// DaysInYear returns 365 or 366
func DaysInYear(year int) int {
	return YearEnd(year).YearDay()
}

// ParseDate parses a date string in supported formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		ISODate,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return Day(time.Now())
}
