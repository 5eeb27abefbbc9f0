package dto

import "time"

type MenteeOutput struct {
	ID             string
	Position       int
	Name           string
	ContactLink    string
	LastSession    time.Time
	NextSession    time.Time
	DatesValid     bool
	ReportWeekday  string
	Checkpoints    [3]bool
	NotifyEndpoint string
}

// ListOutput carries the mirror snapshot plus the staleness warning raised
// when a reload failed and the previous snapshot is still being served.
type ListOutput struct {
	Mentees []MenteeOutput
	Warning string
}

// MutationOutput reports a locally applied change and whether the remote
// write-through confirmed it. Synced=false never means the local change was
// rolled back.
type MutationOutput struct {
	Mentee      MenteeOutput
	Synced      bool
	SyncWarning string
}

type AddInput struct {
	Name           string
	ContactLink    string
	LastSession    time.Time
	NextSession    time.Time // zero value defaults to LastSession + 7 days
	ReportWeekday  string
	NotifyEndpoint string
}

type EditInput struct {
	Selector       string
	Name           *string
	ContactLink    *string
	LastSession    *time.Time
	NextSession    *time.Time
	ReportWeekday  *string
	NotifyEndpoint *string
}

type SetCheckpointInput struct {
	Selector   string
	Checkpoint int // 1..3
	Done       bool
}

type SetCycleDatesInput struct {
	Selector    string
	LastSession time.Time
	NextSession time.Time
}
