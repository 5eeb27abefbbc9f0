package in

import (
	"context"

	cadencedto "mcad/internal/modules/cadence/dto"
	cadencein "mcad/internal/modules/cadence/port/in"
	rosterdto "mcad/internal/modules/roster/dto"
)

type CLIHandler struct {
	usecase cadencein.Usecase
}

func NewCLIHandler(usecase cadencein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Toggle(ctx context.Context, input cadencedto.ToggleInput) (rosterdto.MutationOutput, error) {
	return h.usecase.Toggle(ctx, input)
}

func (h CLIHandler) FinishCycle(ctx context.Context, input cadencedto.FinishInput) (cadencedto.FinishOutput, error) {
	return h.usecase.FinishCycle(ctx, input)
}

func (h CLIHandler) BatchFinish(ctx context.Context) (cadencedto.BatchFinishOutput, error) {
	return h.usecase.BatchFinish(ctx)
}

func (h CLIHandler) Alerts(ctx context.Context) (cadencedto.AlertsOutput, error) {
	return h.usecase.Alerts(ctx)
}

func (h CLIHandler) History(ctx context.Context) (cadencedto.HistoryOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) ReindexHistory(ctx context.Context) error {
	return h.usecase.ReindexHistory(ctx)
}
