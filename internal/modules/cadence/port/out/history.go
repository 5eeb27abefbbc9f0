package out

import (
	"context"

	"mcad/internal/modules/cadence/domain"
)

// HistoryStore is the append-only history-table face of the remote record
// store. Appended entries are never rewritten or deleted from here.
type HistoryStore interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
	List(ctx context.Context) ([]domain.HistoryEntry, error)
}

// HistoryProjector keeps the local history read model. Appends track the
// remote append; Rebuild resynchronizes from a full remote read.
type HistoryProjector interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
	Rebuild(ctx context.Context, entries []domain.HistoryEntry) error
}
