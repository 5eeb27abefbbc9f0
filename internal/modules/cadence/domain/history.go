package domain

import (
	"strings"
	"time"

	rosterdomain "mcad/internal/modules/roster/domain"
)

// History table header, in remote column order.
const (
	ColLoggedDate = "Logged_Date"
	ColMenteeName = "Mentee_Name"
)

var HistoryColumns = []string{
	ColLoggedDate,
	ColMenteeName,
	rosterdomain.ColCheckpoint1,
	rosterdomain.ColCheckpoint2,
	rosterdomain.ColCheckpoint3,
}

// HistoryEntry archives one closed cycle's checkpoint outcomes as they
// stood at close time. Entries are append-only and never rewritten.
type HistoryEntry struct {
	LoggedDate  time.Time
	MenteeName  string
	Checkpoints [3]bool
}

func (e HistoryEntry) Row() []string {
	return []string{
		rosterdomain.FormatDate(e.LoggedDate),
		e.MenteeName,
		rosterdomain.FormatBool(e.Checkpoints[0]),
		rosterdomain.FormatBool(e.Checkpoints[1]),
		rosterdomain.FormatBool(e.Checkpoints[2]),
	}
}

// HistoryEntryFromRow parses one history row. An unreadable logged date
// stays the zero time; the entry is still listed.
func HistoryEntryFromRow(cell func(column string) string) HistoryEntry {
	e := HistoryEntry{MenteeName: strings.TrimSpace(cell(ColMenteeName))}
	if logged, err := rosterdomain.ParseDate(cell(ColLoggedDate)); err == nil {
		e.LoggedDate = logged
	}
	e.Checkpoints[0] = rosterdomain.ParseBool(cell(rosterdomain.ColCheckpoint1))
	e.Checkpoints[1] = rosterdomain.ParseBool(cell(rosterdomain.ColCheckpoint2))
	e.Checkpoints[2] = rosterdomain.ParseBool(cell(rosterdomain.ColCheckpoint3))
	return e
}
