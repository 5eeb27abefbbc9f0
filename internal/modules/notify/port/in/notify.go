package in

import (
	"context"

	"mcad/internal/modules/notify/dto"
)

// Usecase is the notification surface: manual nudges and a health check
// for the delivery path.
type Usecase interface {
	Nudge(ctx context.Context, input dto.NudgeInput) (dto.NudgeOutput, error)
	Doctor(ctx context.Context) (dto.DoctorOutput, error)
}
