package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cadenceadapter "mcad/internal/modules/cadence/adapter/out"
	cadencedomain "mcad/internal/modules/cadence/domain"
	cadencedto "mcad/internal/modules/cadence/dto"
	cadencein "mcad/internal/modules/cadence/port/in"
	cadenceservice "mcad/internal/modules/cadence/service"
	cadenceusecase "mcad/internal/modules/cadence/usecase"
	rosteradapter "mcad/internal/modules/roster/adapter/out"
	rosterdomain "mcad/internal/modules/roster/domain"
	rosterservice "mcad/internal/modules/roster/service"
	rosterusecase "mcad/internal/modules/roster/usecase"
	"mcad/internal/platform/tablestore"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct {
	n int
}

func (f *fakeID) New() string {
	f.n++
	return "row-" + string(rune('a'+f.n-1))
}

// fakeStore is an in-memory two-table record store with switchable
// failures per table.
type fakeStore struct {
	tables     map[string]*tablestore.Table
	failAppend map[string]bool
	failWrite  bool
}

var errRemote = errors.New("quota exceeded")

func (f *fakeStore) ListRows(_ context.Context, table string) (tablestore.Table, error) {
	t := f.tables[table]
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append([]string(nil), r...)
	}
	return tablestore.Table{Columns: t.Columns, Rows: rows}, nil
}

func (f *fakeStore) UpdateCell(_ context.Context, table string, row, col int, value string) error {
	if f.failWrite {
		return errRemote
	}
	f.tables[table].Rows[row][col] = value
	return nil
}

func (f *fakeStore) AppendRow(_ context.Context, table string, values []string) error {
	if f.failAppend[table] {
		return errRemote
	}
	t := f.tables[table]
	t.Rows = append(t.Rows, append([]string(nil), values...))
	return nil
}

func (f *fakeStore) DeleteRow(_ context.Context, table string, row int) error {
	t := f.tables[table]
	t.Rows = append(t.Rows[:row], t.Rows[row+1:]...)
	return nil
}

func (f *fakeStore) EnsureTable(context.Context, string, []string) error { return nil }

type noopRosterProjector struct{}

func (noopRosterProjector) Rebuild(context.Context, []rosterdomain.Mentee) error { return nil }

type fakeHistoryProjector struct {
	appends  int
	rebuilds int
	last     []cadencedomain.HistoryEntry
}

func (f *fakeHistoryProjector) Append(_ context.Context, entry cadencedomain.HistoryEntry) error {
	f.appends++
	return nil
}

func (f *fakeHistoryProjector) Rebuild(_ context.Context, entries []cadencedomain.HistoryEntry) error {
	f.rebuilds++
	f.last = entries
	return nil
}

func seededStore() *fakeStore {
	return &fakeStore{
		tables: map[string]*tablestore.Table{
			"roster": {
				Columns: rosterdomain.PrimaryColumns,
				Rows: [][]string{
					{"Ana", "", "2024-06-03", "2024-06-10", "Wednesday", "TRUE", "TRUE", "FALSE", ""},
					{"Ben", "", "2024-06-08", "2024-06-15", "Monday", "FALSE", "FALSE", "FALSE", ""},
					{"Cara", "", "soon", "later", "Friday", "FALSE", "FALSE", "FALSE", ""},
				},
			},
			"history": {Columns: cadencedomain.HistoryColumns},
		},
		failAppend: map[string]bool{},
	}
}

func newCadence(store *fakeStore, clk *fakeClock) (cadencein.Usecase, *fakeHistoryProjector) {
	rosterStore := rosteradapter.NewTableRosterStore(store, "roster")
	mirror := rosterservice.NewMirror(rosterStore, clk, &fakeID{}, time.Hour)
	roster := rosterusecase.NewInteractor(rosterservice.NewRosterService(mirror, rosterStore, noopRosterProjector{}))
	history := cadenceadapter.NewTableHistoryStore(store, "history")
	projector := &fakeHistoryProjector{}
	svc := cadenceservice.NewCadenceService(clk, roster, history, projector)
	return cadenceusecase.NewInteractor(svc), projector
}

func TestToggleFlipsCheckpointBothWays(t *testing.T) {
	t.Parallel()
	store := seededStore()
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, _ := newCadence(store, clk)

	ctx := context.Background()
	out, err := uc.Toggle(ctx, cadencedto.ToggleInput{Selector: "Ana", Checkpoint: 3})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !out.Mentee.Checkpoints[2] || store.tables["roster"].Rows[0][7] != "TRUE" {
		t.Fatalf("first toggle must set the checkpoint, got %+v", out.Mentee)
	}
	out, err = uc.Toggle(ctx, cadencedto.ToggleInput{Selector: "Ana", Checkpoint: 3})
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if out.Mentee.Checkpoints[2] || store.tables["roster"].Rows[0][7] != "FALSE" {
		t.Fatalf("second toggle must clear the checkpoint, got %+v", out.Mentee)
	}
}

func TestFinishCycleArchivesThenResets(t *testing.T) {
	t.Parallel()
	store := seededStore()
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, projector := newCadence(store, clk)

	out, err := uc.FinishCycle(context.Background(), cadencedto.FinishInput{Selector: "Ana"})
	if err != nil {
		t.Fatalf("finish cycle: %v", err)
	}
	if !out.Synced {
		t.Fatalf("expected synced finish, got %q", out.SyncWarning)
	}
	if out.Entry.MenteeName != "Ana" || out.Entry.Checkpoints != [3]bool{true, true, false} {
		t.Fatalf("archived entry must carry the prior checkpoint values, got %+v", out.Entry)
	}
	if !out.Entry.LoggedDate.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("entry must be logged today, got %s", out.Entry.LoggedDate)
	}
	if out.Mentee.Checkpoints != [3]bool{false, false, false} {
		t.Fatalf("all checkpoints must read false after finish, got %+v", out.Mentee)
	}

	history := store.tables["history"].Rows
	if len(history) != 1 {
		t.Fatalf("want exactly one history row, got %d", len(history))
	}
	want := []string{"2024-06-10", "Ana", "TRUE", "TRUE", "FALSE"}
	for i, cell := range want {
		if history[0][i] != cell {
			t.Fatalf("history row = %v, want %v", history[0], want)
		}
	}
	row := store.tables["roster"].Rows[0]
	if row[2] != "2024-06-10" || row[3] != "2024-06-17" {
		t.Fatalf("anchor dates must advance to today and today+7, got %v", row)
	}
	if row[5] != "FALSE" || row[6] != "FALSE" || row[7] != "FALSE" {
		t.Fatalf("remote checkpoints must be reset, got %v", row)
	}
	if projector.appends != 1 {
		t.Fatalf("history log must receive the new entry, got %d appends", projector.appends)
	}
}

func TestFinishCycleAbortsWhenArchiveFails(t *testing.T) {
	t.Parallel()
	store := seededStore()
	store.failAppend["history"] = true
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, _ := newCadence(store, clk)

	ctx := context.Background()
	if _, err := uc.FinishCycle(ctx, cadencedto.FinishInput{Selector: "Ana"}); err == nil {
		t.Fatalf("finish must fail when the archive append fails")
	}
	row := store.tables["roster"].Rows[0]
	if row[2] != "2024-06-03" || row[5] != "TRUE" {
		t.Fatalf("aborted finish must leave the record untouched, got %v", row)
	}
	if len(store.tables["history"].Rows) != 0 {
		t.Fatalf("no history row may exist after a failed append")
	}
}

func TestFinishCycleWarnsWhenResetWritesFail(t *testing.T) {
	t.Parallel()
	store := seededStore()
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, _ := newCadence(store, clk)

	// Prime the mirror, then fail every cell write so only the archive
	// append lands remotely.
	if _, err := uc.Alerts(context.Background()); err != nil {
		t.Fatalf("prime mirror: %v", err)
	}
	store.failWrite = true
	out, err := uc.FinishCycle(context.Background(), cadencedto.FinishInput{Selector: "Ana"})
	if err != nil {
		t.Fatalf("finish cycle: %v", err)
	}
	if out.Synced || out.SyncWarning == "" {
		t.Fatalf("failed resets must surface as sync warning, got %+v", out)
	}
	if out.Mentee.Checkpoints != [3]bool{false, false, false} {
		t.Fatalf("local reset must hold despite remote failure, got %+v", out.Mentee)
	}
	if len(store.tables["history"].Rows) != 1 {
		t.Fatalf("archive append must still have happened")
	}
}

func TestBatchFinishProcessesOnlyDueCycles(t *testing.T) {
	t.Parallel()
	store := seededStore()
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, _ := newCadence(store, clk)

	out, err := uc.BatchFinish(context.Background())
	if err != nil {
		t.Fatalf("batch finish: %v", err)
	}
	// Ana's next session is today; Ben's is in the future and Cara's
	// dates are unreadable.
	if out.Processed != 1 || out.Skipped != 2 {
		t.Fatalf("want 1 processed / 2 skipped, got %d / %d", out.Processed, out.Skipped)
	}
	row := store.tables["roster"].Rows[0]
	if row[2] != "2024-06-10" || row[3] != "2024-06-17" {
		t.Fatalf("due cycle must advance from its old next session, got %v", row)
	}
	if ben := store.tables["roster"].Rows[1]; ben[2] != "2024-06-08" || ben[3] != "2024-06-15" {
		t.Fatalf("future cycle must stay untouched, got %v", ben)
	}
	if len(store.tables["history"].Rows) != 1 {
		t.Fatalf("exactly one cycle may be archived, got %d", len(store.tables["history"].Rows))
	}
}

func TestBatchFinishCountsFailedArchiveInNeitherBucket(t *testing.T) {
	t.Parallel()
	store := seededStore()
	store.failAppend["history"] = true
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, _ := newCadence(store, clk)

	ctx := context.Background()
	out, err := uc.BatchFinish(ctx)
	if err != nil {
		t.Fatalf("batch finish: %v", err)
	}
	// Ana is eligible but her archive append failed: not processed, and
	// not skipped either — only Ben and Cara are skipped.
	if out.Processed != 0 || out.Skipped != 2 {
		t.Fatalf("want 0 processed / 2 skipped, got %d / %d", out.Processed, out.Skipped)
	}
	if len(out.Warnings) == 0 {
		t.Fatalf("failed archive must surface a per-mentee warning")
	}
	row := store.tables["roster"].Rows[0]
	if row[2] != "2024-06-03" || row[5] != "TRUE" {
		t.Fatalf("aborted close must leave the record untouched, got %v", row)
	}

	// Her dates are unchanged, so the next invocation retries her.
	store.failAppend["history"] = false
	out, err = uc.BatchFinish(ctx)
	if err != nil {
		t.Fatalf("second batch finish: %v", err)
	}
	if out.Processed != 1 || out.Skipped != 2 {
		t.Fatalf("retry must close the cycle, got %d / %d", out.Processed, out.Skipped)
	}
}

func TestAlertsEvaluateRosterFailSoft(t *testing.T) {
	t.Parallel()
	store := seededStore()
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, _ := newCadence(store, clk)

	out, err := uc.Alerts(context.Background())
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	// Ana: pre-work due the day before her next session. Ben: his
	// session day has passed without encouragement. Cara is skipped.
	if len(out.Alerts) != 2 {
		t.Fatalf("want two alerts, got %+v", out.Alerts)
	}
	if out.Alerts[0].MenteeName != "Ana" || out.Alerts[0].Checkpoint != 3 {
		t.Fatalf("want Ana pre-work alert first, got %+v", out.Alerts[0])
	}
	if out.Alerts[1].MenteeName != "Ben" || out.Alerts[1].Checkpoint != 1 {
		t.Fatalf("want Ben encouragement alert, got %+v", out.Alerts[1])
	}
	// Ben reports on Mondays and today is Monday.
	if len(out.DueToday) != 1 || out.DueToday[0].MenteeName != "Ben" {
		t.Fatalf("want Ben report due today, got %+v", out.DueToday)
	}
}

func TestHistoryListAndReindex(t *testing.T) {
	t.Parallel()
	store := seededStore()
	store.tables["history"].Rows = [][]string{
		{"2024-06-03", "Ana", "TRUE", "FALSE", "TRUE"},
		{"not-a-date", "Ben", "FALSE", "FALSE", "FALSE"},
	}
	clk := &fakeClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	uc, projector := newCadence(store, clk)

	ctx := context.Background()
	out, err := uc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("want both entries listed, got %d", len(out.Entries))
	}
	if out.Entries[0].MenteeName != "Ana" || out.Entries[0].Checkpoints != [3]bool{true, false, true} {
		t.Fatalf("unexpected first entry: %+v", out.Entries[0])
	}
	if !out.Entries[1].LoggedDate.IsZero() {
		t.Fatalf("unreadable logged date must stay zero, got %s", out.Entries[1].LoggedDate)
	}

	if err := uc.ReindexHistory(ctx); err != nil {
		t.Fatalf("reindex history: %v", err)
	}
	if projector.rebuilds != 1 || len(projector.last) != 2 {
		t.Fatalf("reindex must rebuild from the full read, got %d rebuilds", projector.rebuilds)
	}
}
