package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in loc (time.Local when nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), loc)
}

// FormatDate formats t as YYYY-MM-DD in loc (time.Local when nil).
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDate)
}

// CalendarDay compares dates by their YYYY-MM-DD form. The layout sorts
// lexically in calendar order.
func CalendarDay(a, b string) int {
	return strings.Compare(a, b)
}
