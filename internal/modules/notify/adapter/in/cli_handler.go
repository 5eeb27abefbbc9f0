package in

import (
	"context"

	notifydto "mcad/internal/modules/notify/dto"
	notifyin "mcad/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Nudge(ctx context.Context, input notifydto.NudgeInput) (notifydto.NudgeOutput, error) {
	return h.usecase.Nudge(ctx, input)
}

func (h CLIHandler) Doctor(ctx context.Context) (notifydto.DoctorOutput, error) {
	return h.usecase.Doctor(ctx)
}
