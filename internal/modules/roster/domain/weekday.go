package domain

import (
	"strings"
	"time"
)

// Weekday indexes Monday as 0 through Sunday as 6, matching the report-day
// convention of the record store.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return weekdayNames[Monday]
	}
	return weekdayNames[w]
}

// ParseWeekday reads a weekday cell case-insensitively. Unparsable values
// fall back to Monday with ok=false.
func ParseWeekday(s string) (Weekday, bool) {
	clean := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if strings.ToLower(name) == clean {
			return Weekday(i), true
		}
	}
	return Monday, false
}

// WeekdayOf converts a calendar date to the Monday-based index.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}
