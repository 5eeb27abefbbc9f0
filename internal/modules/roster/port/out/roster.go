package out

import (
	"context"

	"mcad/internal/modules/roster/domain"
)

// RosterStore is the primary-table face of the remote record store. Row
// positions are data-row indexes from the most recent LoadAll; callers must
// reload after any row-count change before issuing further positional
// writes.
type RosterStore interface {
	LoadAll(ctx context.Context) ([]domain.Mentee, error)
	SetCell(ctx context.Context, position int, column, value string) error
	Append(ctx context.Context, mentee domain.Mentee) error
	Delete(ctx context.Context, position int) error
}

// RosterProjector maintains the local read model. The mirror is replaced
// wholesale on reload, so the projection is rebuilt rather than patched.
type RosterProjector interface {
	Rebuild(ctx context.Context, mentees []domain.Mentee) error
}
