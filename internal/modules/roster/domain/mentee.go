package domain

import (
	"fmt"
	"strings"
	"time"
)

// Primary table header, in remote column order.
const (
	ColName           = "Name"
	ColContactLink    = "Chat_Link"
	ColLastSession    = "Last_Session_Date"
	ColNextSession    = "Next_Session_Date"
	ColReportWeekday  = "Report_Day"
	ColCheckpoint1    = "P1_Sent_Encouragement"
	ColCheckpoint2    = "P2_Received_Report"
	ColCheckpoint3    = "P3_Sent_Prework"
	ColNotifyEndpoint = "Webhook"
)

var PrimaryColumns = []string{
	ColName,
	ColContactLink,
	ColLastSession,
	ColNextSession,
	ColReportWeekday,
	ColCheckpoint1,
	ColCheckpoint2,
	ColCheckpoint3,
	ColNotifyEndpoint,
}

// CheckpointColumns maps checkpoint index 0..2 to its column name.
var CheckpointColumns = [3]string{ColCheckpoint1, ColCheckpoint2, ColCheckpoint3}

const DateLayout = "2006-01-02"

// Mentee is one tracked row of the primary table. ID is an opaque key valid
// for one mirror snapshot only; Position is the row's index in that
// snapshot, which is also its remote data-row address.
type Mentee struct {
	ID             string
	Position       int
	Name           string
	ContactLink    string
	LastSession    time.Time
	NextSession    time.Time
	DatesValid     bool
	ReportWeekday  Weekday
	Checkpoints    [3]bool
	NotifyEndpoint string
}

func (m Mentee) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !m.DatesValid {
		return fmt.Errorf("session dates are required")
	}
	if m.NextSession.Before(m.LastSession) {
		return fmt.Errorf("next session %s precedes last session %s",
			FormatDate(m.NextSession), FormatDate(m.LastSession))
	}
	return nil
}

// Row serializes the mentee into primary-table column order.
func (m Mentee) Row() []string {
	return []string{
		m.Name,
		m.ContactLink,
		FormatDate(m.LastSession),
		FormatDate(m.NextSession),
		m.ReportWeekday.String(),
		FormatBool(m.Checkpoints[0]),
		FormatBool(m.Checkpoints[1]),
		FormatBool(m.Checkpoints[2]),
		m.NotifyEndpoint,
	}
}

// MenteeFromRow parses one remote row leniently: unreadable booleans read
// false, an unreadable weekday falls back to Monday, and unreadable dates
// clear DatesValid so the record is skipped for deadline work while
// staying addressable for edits.
func MenteeFromRow(id string, position int, cell func(column string) string) Mentee {
	m := Mentee{
		ID:             id,
		Position:       position,
		Name:           strings.TrimSpace(cell(ColName)),
		ContactLink:    strings.TrimSpace(cell(ColContactLink)),
		NotifyEndpoint: strings.TrimSpace(cell(ColNotifyEndpoint)),
	}
	m.ReportWeekday, _ = ParseWeekday(cell(ColReportWeekday))
	for i, col := range CheckpointColumns {
		m.Checkpoints[i] = ParseBool(cell(col))
	}

	last, lastErr := ParseDate(cell(ColLastSession))
	if lastErr != nil {
		return m
	}
	m.LastSession = last
	next, nextErr := ParseDate(cell(ColNextSession))
	if nextErr != nil {
		if strings.TrimSpace(cell(ColNextSession)) != "" {
			return m
		}
		// A blank next-session cell means the row predates the cycle
		// columns; derive the standard weekly cadence.
		next = last.AddDate(0, 0, 7)
	}
	m.NextSession = next
	m.DatesValid = true
	return m
}

// ParseBool reads the store's TRUE/FALSE cell encoding. Anything that is
// not TRUE, in any casing, reads as false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}

func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
