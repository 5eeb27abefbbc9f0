package usecase

import (
	"context"

	"mcad/internal/modules/notify/dto"
	notifyin "mcad/internal/modules/notify/port/in"
	"mcad/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Nudge(ctx context.Context, input dto.NudgeInput) (dto.NudgeOutput, error) {
	name, endpoint, via, err := i.svc.Nudge(ctx, input.Selector, input.Text)
	if err != nil {
		return dto.NudgeOutput{}, err
	}
	return dto.NudgeOutput{MenteeName: name, Endpoint: endpoint, Via: via}, nil
}

func (i *Interactor) Doctor(ctx context.Context) (dto.DoctorOutput, error) {
	report, err := i.svc.Doctor(ctx)
	if err != nil {
		return dto.DoctorOutput{}, err
	}
	return dto.DoctorOutput{
		ManifestFound: report.ManifestFound,
		ManifestError: report.ManifestError,
		PluginName:    report.PluginName,
		PluginVersion: report.PluginVersion,
		PluginError:   report.PluginError,
		Fallback:      report.Fallback,
	}, nil
}
