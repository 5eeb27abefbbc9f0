package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"mcad/internal/modules/roster/domain"
	rosterout "mcad/internal/modules/roster/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRosterProjector struct {
	db *sql.DB
}

func NewSQLiteRosterProjector(dbPath string) (rosterout.RosterProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRosterProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteRosterProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS roster_index (
  position INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  contact_link TEXT,
  last_session TEXT,
  next_session TEXT,
  report_day TEXT NOT NULL,
  checkpoint_1 INTEGER NOT NULL,
  checkpoint_2 INTEGER NOT NULL,
  checkpoint_3 INTEGER NOT NULL,
  notify_endpoint TEXT,
  dates_valid INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create roster_index table: %w", err)
	}
	return nil
}

func (s *SQLiteRosterProjector) Rebuild(ctx context.Context, mentees []domain.Mentee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rebuild roster_index: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_index`); err != nil {
		return fmt.Errorf("reset roster_index: %w", err)
	}
	const stmt = `
INSERT INTO roster_index (position, name, contact_link, last_session, next_session, report_day, checkpoint_1, checkpoint_2, checkpoint_3, notify_endpoint, dates_valid)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	for _, m := range mentees {
		lastSession, nextSession := "", ""
		if m.DatesValid {
			lastSession = domain.FormatDate(m.LastSession)
			nextSession = domain.FormatDate(m.NextSession)
		}
		_, err := tx.ExecContext(ctx, stmt,
			m.Position,
			m.Name,
			m.ContactLink,
			lastSession,
			nextSession,
			m.ReportWeekday.String(),
			boolToInt(m.Checkpoints[0]),
			boolToInt(m.Checkpoints[1]),
			boolToInt(m.Checkpoints[2]),
			m.NotifyEndpoint,
			boolToInt(m.DatesValid),
		)
		if err != nil {
			return fmt.Errorf("insert roster_index row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster_index: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
