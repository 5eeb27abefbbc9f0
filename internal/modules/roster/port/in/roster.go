package in

import (
	"context"

	"mcad/internal/modules/roster/dto"
)

// Usecase is the roster surface consumed by the CLI, the TUI, and the
// cadence engine. Selectors resolve a snapshot id or a unique
// case-insensitive mentee name.
type Usecase interface {
	List(ctx context.Context) (dto.ListOutput, error)
	Get(ctx context.Context, selector string) (dto.MenteeOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.MutationOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.MutationOutput, error)
	Remove(ctx context.Context, selector string) (dto.MutationOutput, error)
	SetCheckpoint(ctx context.Context, input dto.SetCheckpointInput) (dto.MutationOutput, error)
	SetCycleDates(ctx context.Context, input dto.SetCycleDatesInput) (dto.MutationOutput, error)
	Refresh(ctx context.Context) (dto.ListOutput, error)
	Reindex(ctx context.Context) error
}
