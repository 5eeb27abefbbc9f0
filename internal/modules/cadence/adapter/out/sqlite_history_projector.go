package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"mcad/internal/modules/cadence/domain"
	cadenceout "mcad/internal/modules/cadence/port/out"
	rosterdomain "mcad/internal/modules/roster/domain"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (cadenceout.HistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS history_log (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  logged_date TEXT,
  mentee_name TEXT NOT NULL,
  checkpoint_1 INTEGER NOT NULL,
  checkpoint_2 INTEGER NOT NULL,
  checkpoint_3 INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history_log table: %w", err)
	}
	return nil
}

const insertEntry = `
INSERT INTO history_log (logged_date, mentee_name, checkpoint_1, checkpoint_2, checkpoint_3)
VALUES (?, ?, ?, ?, ?);
`

func (s *SQLiteHistoryProjector) Append(ctx context.Context, entry domain.HistoryEntry) error {
	if _, err := s.db.ExecContext(ctx, insertEntry, entryArgs(entry)...); err != nil {
		return fmt.Errorf("insert history_log row: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Rebuild(ctx context.Context, entries []domain.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rebuild history_log: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history_log`); err != nil {
		return fmt.Errorf("reset history_log: %w", err)
	}
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, insertEntry, entryArgs(entry)...); err != nil {
			return fmt.Errorf("insert history_log row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history_log: %w", err)
	}
	return nil
}

func entryArgs(entry domain.HistoryEntry) []any {
	logged := ""
	if !entry.LoggedDate.IsZero() {
		logged = rosterdomain.FormatDate(entry.LoggedDate)
	}
	return []any{
		logged,
		entry.MenteeName,
		boolToInt(entry.Checkpoints[0]),
		boolToInt(entry.Checkpoints[1]),
		boolToInt(entry.Checkpoints[2]),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
