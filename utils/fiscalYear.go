package utils

import (
	"strconv"
	"time"
)

// DateLayout is the ISO date format used for every date field in the registry.
const DateLayout = "2006-01-02"

// FiscalYear returns the fiscal-year label for a date. The fiscal year starts
// on October 1st, so October through December carry the next year's label.
func FiscalYear(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.October {
		year++
	}
	return strconv.Itoa(year)
}

// ParseDate parses an ISO yyyy-mm-dd value. The second return value is false
// for empty or malformed input.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a time as an ISO yyyy-mm-dd string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
