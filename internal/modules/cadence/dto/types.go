package dto

import (
	"time"

	rosterdto "mcad/internal/modules/roster/dto"
)

type ToggleInput struct {
	Selector   string
	Checkpoint int // 1..3
}

type FinishInput struct {
	Selector       string
	NewLastSession time.Time // zero value defaults to today
	NewNextSession time.Time // zero value defaults to NewLastSession + 7 days
}

type HistoryEntryOutput struct {
	LoggedDate  time.Time
	MenteeName  string
	Checkpoints [3]bool
}

// FinishOutput reports one closed cycle: the archived entry, the mentee as
// reset for the new cycle, and the sync status of the remote writes.
type FinishOutput struct {
	Mentee      rosterdto.MenteeOutput
	Entry       HistoryEntryOutput
	Synced      bool
	SyncWarning string
}

type BatchFinishOutput struct {
	Processed int
	Skipped   int
	Warnings  []string
}

type AlertOutput struct {
	MenteeID   string
	MenteeName string
	Checkpoint int
	Reason     string
}

// AlertsOutput is the day's alert list. DueToday carries the non-alerting
// report-due-today states; Warning reports a stale mirror snapshot.
type AlertsOutput struct {
	Today    time.Time
	Alerts   []AlertOutput
	DueToday []AlertOutput
	Warning  string
}

type HistoryOutput struct {
	Entries []HistoryEntryOutput
}
