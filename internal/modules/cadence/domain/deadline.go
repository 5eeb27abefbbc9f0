package domain

import (
	"time"

	rosterdomain "mcad/internal/modules/roster/domain"
)

// Deadlines are the three checkpoint dates derived from one cycle.
type Deadlines struct {
	Encouragement time.Time // day after the last session
	Report        time.Time // first report weekday after the last session
	Prework       time.Time // day before the next session
}

// ComputeDeadlines derives the checkpoint deadlines from the cycle anchor
// dates and the weekly report day. The report deadline is the first
// occurrence of the report weekday strictly after the last session: a
// session held on the report day itself pushes the report a full week out.
func ComputeDeadlines(last, next time.Time, reportDay rosterdomain.Weekday) Deadlines {
	offset := (int(reportDay) - int(rosterdomain.WeekdayOf(last)) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return Deadlines{
		Encouragement: last.AddDate(0, 0, 1),
		Report:        last.AddDate(0, 0, offset),
		Prework:       next.AddDate(0, 0, -1),
	}
}
