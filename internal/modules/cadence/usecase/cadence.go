package usecase

import (
	"context"

	"mcad/internal/modules/cadence/domain"
	"mcad/internal/modules/cadence/dto"
	cadencein "mcad/internal/modules/cadence/port/in"
	"mcad/internal/modules/cadence/service"
	rosterdto "mcad/internal/modules/roster/dto"
)

type Interactor struct {
	svc *service.CadenceService
}

func NewInteractor(svc *service.CadenceService) cadencein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (rosterdto.MutationOutput, error) {
	return i.svc.Toggle(ctx, input.Selector, input.Checkpoint)
}

func (i *Interactor) FinishCycle(ctx context.Context, input dto.FinishInput) (dto.FinishOutput, error) {
	mentee, entry, warning, err := i.svc.FinishCycle(ctx, input.Selector, input.NewLastSession, input.NewNextSession)
	if err != nil {
		return dto.FinishOutput{}, err
	}
	return dto.FinishOutput{
		Mentee:      mentee,
		Entry:       toEntryOutput(entry),
		Synced:      warning == "",
		SyncWarning: warning,
	}, nil
}

func (i *Interactor) BatchFinish(ctx context.Context) (dto.BatchFinishOutput, error) {
	processed, skipped, warnings, err := i.svc.BatchFinish(ctx)
	if err != nil {
		return dto.BatchFinishOutput{}, err
	}
	return dto.BatchFinishOutput{Processed: processed, Skipped: skipped, Warnings: warnings}, nil
}

func (i *Interactor) Alerts(ctx context.Context) (dto.AlertsOutput, error) {
	today, alerts, dueToday, warning, err := i.svc.Alerts(ctx)
	if err != nil {
		return dto.AlertsOutput{}, err
	}
	return dto.AlertsOutput{
		Today:    today,
		Alerts:   toAlertOutputs(alerts),
		DueToday: toAlertOutputs(dueToday),
		Warning:  warning,
	}, nil
}

func (i *Interactor) History(ctx context.Context) (dto.HistoryOutput, error) {
	entries, err := i.svc.History(ctx)
	if err != nil {
		return dto.HistoryOutput{}, err
	}
	out := make([]dto.HistoryEntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryOutput(entry))
	}
	return dto.HistoryOutput{Entries: out}, nil
}

func (i *Interactor) ReindexHistory(ctx context.Context) error {
	return i.svc.ReindexHistory(ctx)
}

func toEntryOutput(entry domain.HistoryEntry) dto.HistoryEntryOutput {
	return dto.HistoryEntryOutput{
		LoggedDate:  entry.LoggedDate,
		MenteeName:  entry.MenteeName,
		Checkpoints: entry.Checkpoints,
	}
}

func toAlertOutputs(alerts []domain.Alert) []dto.AlertOutput {
	out := make([]dto.AlertOutput, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertOutput{
			MenteeID:   a.MenteeID,
			MenteeName: a.MenteeName,
			Checkpoint: a.Checkpoint,
			Reason:     a.Reason,
		})
	}
	return out
}
