package in

import (
	"context"

	"mcad/internal/modules/cadence/dto"
	rosterdto "mcad/internal/modules/roster/dto"
)

// Usecase is the cadence surface: checkpoint toggles, cycle transitions,
// the day's alerts and the cycle history.
type Usecase interface {
	Toggle(ctx context.Context, input dto.ToggleInput) (rosterdto.MutationOutput, error)
	FinishCycle(ctx context.Context, input dto.FinishInput) (dto.FinishOutput, error)
	BatchFinish(ctx context.Context) (dto.BatchFinishOutput, error)
	Alerts(ctx context.Context) (dto.AlertsOutput, error)
	History(ctx context.Context) (dto.HistoryOutput, error)
	ReindexHistory(ctx context.Context) error
}
