package usecase

import (
	"context"
	"fmt"

	"mcad/internal/modules/roster/domain"
	"mcad/internal/modules/roster/dto"
	rosterin "mcad/internal/modules/roster/port/in"
	"mcad/internal/modules/roster/service"
	"mcad/internal/platform/clock"
	apperrors "mcad/internal/platform/errors"
)

type Interactor struct {
	svc *service.RosterService
}

func NewInteractor(svc *service.RosterService) rosterin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	mentees, warning, err := i.svc.List(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	return dto.ListOutput{Mentees: toOutputs(mentees), Warning: warning}, nil
}

func (i *Interactor) Get(ctx context.Context, selector string) (dto.MenteeOutput, error) {
	mentee, err := i.svc.Get(ctx, selector)
	if err != nil {
		return dto.MenteeOutput{}, err
	}
	return toOutput(mentee), nil
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.MutationOutput, error) {
	weekday, ok := domain.ParseWeekday(input.ReportWeekday)
	if !ok {
		return dto.MutationOutput{}, fmt.Errorf("%w: unknown report day %q", apperrors.ErrInvalidInput, input.ReportWeekday)
	}
	last := clock.Day(input.LastSession)
	next := input.NextSession
	if next.IsZero() {
		next = last.AddDate(0, 0, 7)
	}
	mentee := domain.Mentee{
		Name:           input.Name,
		ContactLink:    input.ContactLink,
		LastSession:    last,
		NextSession:    clock.Day(next),
		DatesValid:     !input.LastSession.IsZero(),
		ReportWeekday:  weekday,
		NotifyEndpoint: input.NotifyEndpoint,
	}
	added, warning, err := i.svc.Add(ctx, mentee)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(added, warning), nil
}

func (i *Interactor) Edit(ctx context.Context, input dto.EditInput) (dto.MutationOutput, error) {
	edit := service.FieldEdit{
		Name:           input.Name,
		ContactLink:    input.ContactLink,
		LastSession:    input.LastSession,
		NextSession:    input.NextSession,
		NotifyEndpoint: input.NotifyEndpoint,
	}
	if input.ReportWeekday != nil {
		weekday, ok := domain.ParseWeekday(*input.ReportWeekday)
		if !ok {
			return dto.MutationOutput{}, fmt.Errorf("%w: unknown report day %q", apperrors.ErrInvalidInput, *input.ReportWeekday)
		}
		edit.ReportWeekday = &weekday
	}
	updated, warning, err := i.svc.Edit(ctx, input.Selector, edit)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(updated, warning), nil
}

func (i *Interactor) Remove(ctx context.Context, selector string) (dto.MutationOutput, error) {
	removed, warning, err := i.svc.Remove(ctx, selector)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(removed, warning), nil
}

func (i *Interactor) SetCheckpoint(ctx context.Context, input dto.SetCheckpointInput) (dto.MutationOutput, error) {
	updated, warning, err := i.svc.SetCheckpoint(ctx, input.Selector, input.Checkpoint, input.Done)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(updated, warning), nil
}

func (i *Interactor) SetCycleDates(ctx context.Context, input dto.SetCycleDatesInput) (dto.MutationOutput, error) {
	updated, warning, err := i.svc.SetCycleDates(ctx, input.Selector, input.LastSession, input.NextSession)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(updated, warning), nil
}

func (i *Interactor) Refresh(ctx context.Context) (dto.ListOutput, error) {
	mentees, warning, err := i.svc.Refresh(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	return dto.ListOutput{Mentees: toOutputs(mentees), Warning: warning}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(m domain.Mentee) dto.MenteeOutput {
	return dto.MenteeOutput{
		ID:             m.ID,
		Position:       m.Position,
		Name:           m.Name,
		ContactLink:    m.ContactLink,
		LastSession:    m.LastSession,
		NextSession:    m.NextSession,
		DatesValid:     m.DatesValid,
		ReportWeekday:  m.ReportWeekday.String(),
		Checkpoints:    m.Checkpoints,
		NotifyEndpoint: m.NotifyEndpoint,
	}
}

func toOutputs(mentees []domain.Mentee) []dto.MenteeOutput {
	out := make([]dto.MenteeOutput, 0, len(mentees))
	for _, m := range mentees {
		out = append(out, toOutput(m))
	}
	return out
}

func toMutation(m domain.Mentee, warning string) dto.MutationOutput {
	return dto.MutationOutput{Mentee: toOutput(m), Synced: warning == "", SyncWarning: warning}
}
