package domain

import (
	"fmt"
	"time"

	rosterdomain "mcad/internal/modules/roster/domain"
)

// CycleRecord is the slice of a mentee that cadence evaluation needs.
type CycleRecord struct {
	MenteeID      string
	MenteeName    string
	LastSession   time.Time
	NextSession   time.Time
	DatesValid    bool
	ReportWeekday rosterdomain.Weekday
	Checkpoints   [3]bool
}

type Alert struct {
	MenteeID   string
	MenteeName string
	Checkpoint int // 1..3
	Reason     string
}

// EvaluateAlerts compares today against the record's deadlines and returns
// the overdue checkpoints in checkpoint order. Records with unreadable
// dates produce nothing; they must not stop evaluation of other records.
//
// Thresholds differ on purpose: encouragement and pre-work become due on
// their deadline day, while the report counts as missed only once its due
// day has fully elapsed.
func EvaluateAlerts(today time.Time, record CycleRecord) []Alert {
	if !record.DatesValid {
		return nil
	}
	deadlines := ComputeDeadlines(record.LastSession, record.NextSession, record.ReportWeekday)
	var alerts []Alert
	if !record.Checkpoints[0] && !today.Before(deadlines.Encouragement) {
		alerts = append(alerts, Alert{
			MenteeID:   record.MenteeID,
			MenteeName: record.MenteeName,
			Checkpoint: 1,
			Reason:     fmt.Sprintf("send encouragement (session was %s)", rosterdomain.FormatDate(record.LastSession)),
		})
	}
	if !record.Checkpoints[1] && today.After(deadlines.Report) {
		alerts = append(alerts, Alert{
			MenteeID:   record.MenteeID,
			MenteeName: record.MenteeName,
			Checkpoint: 2,
			Reason:     fmt.Sprintf("report not received (was due %s)", rosterdomain.FormatDate(deadlines.Report)),
		})
	}
	if !record.Checkpoints[2] && !today.Before(deadlines.Prework) {
		alerts = append(alerts, Alert{
			MenteeID:   record.MenteeID,
			MenteeName: record.MenteeName,
			Checkpoint: 3,
			Reason:     fmt.Sprintf("send pre-work (next session %s)", rosterdomain.FormatDate(record.NextSession)),
		})
	}
	return alerts
}

// ReportDueToday reports the non-alerting state where the report deadline
// is today and the report has not arrived yet.
func ReportDueToday(today time.Time, record CycleRecord) bool {
	if !record.DatesValid || record.Checkpoints[1] {
		return false
	}
	deadlines := ComputeDeadlines(record.LastSession, record.NextSession, record.ReportWeekday)
	return today.Equal(deadlines.Report)
}
