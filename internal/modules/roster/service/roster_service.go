package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mcad/internal/modules/roster/domain"
	rosterout "mcad/internal/modules/roster/port/out"
	"mcad/internal/platform/clock"
	apperrors "mcad/internal/platform/errors"
)

// RosterService owns the write-through discipline: every mutation lands in
// the mirror first and returns immediately; the matching remote write is
// attempted once and its failure comes back as a warning, never a
// rollback. Operations that change the row count force a full reload so
// positional addressing stays correct.
type RosterService struct {
	mirror    *Mirror
	store     rosterout.RosterStore
	projector rosterout.RosterProjector
}

func NewRosterService(mirror *Mirror, store rosterout.RosterStore, projector rosterout.RosterProjector) *RosterService {
	return &RosterService{mirror: mirror, store: store, projector: projector}
}

func (s *RosterService) ensure(ctx context.Context) (string, error) {
	reloaded, warning, err := s.mirror.Ensure(ctx)
	if err != nil {
		return "", err
	}
	if reloaded {
		warning = joinWarnings(warning, s.reproject(ctx))
	}
	return warning, nil
}

// reproject rebuilds the read model; failures degrade to a warning because
// the mirror, not the projection, is what operations read.
func (s *RosterService) reproject(ctx context.Context) string {
	if err := s.projector.Rebuild(ctx, s.mirror.Mentees()); err != nil {
		return fmt.Sprintf("roster index not updated: %v", err)
	}
	return ""
}

func (s *RosterService) List(ctx context.Context) ([]domain.Mentee, string, error) {
	warning, err := s.ensure(ctx)
	if err != nil {
		return nil, "", err
	}
	return s.mirror.Mentees(), warning, nil
}

func (s *RosterService) Get(ctx context.Context, selector string) (domain.Mentee, error) {
	if _, err := s.ensure(ctx); err != nil {
		return domain.Mentee{}, err
	}
	return s.mirror.Find(selector)
}

func (s *RosterService) Add(ctx context.Context, mentee domain.Mentee) (domain.Mentee, string, error) {
	mentee.Checkpoints = [3]bool{}
	if err := mentee.Validate(); err != nil {
		return domain.Mentee{}, "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if _, err := s.ensure(ctx); err != nil {
		return domain.Mentee{}, "", err
	}
	local := s.mirror.AppendLocal(mentee)
	if err := s.store.Append(ctx, local); err != nil {
		s.mirror.Invalidate()
		return local, fmt.Sprintf("saved locally, remote append failed: %v", err), nil
	}
	// Row count changed remotely: reload before any further positional
	// writes.
	if err := s.mirror.Reload(ctx); err != nil {
		return local, fmt.Sprintf("added remotely, reload failed: %v", err), nil
	}
	warning := s.reproject(ctx)
	mentees := s.mirror.Mentees()
	if len(mentees) > 0 {
		return mentees[len(mentees)-1], warning, nil
	}
	return local, warning, nil
}

func (s *RosterService) Remove(ctx context.Context, selector string) (domain.Mentee, string, error) {
	if _, err := s.ensure(ctx); err != nil {
		return domain.Mentee{}, "", err
	}
	mentee, err := s.mirror.Find(selector)
	if err != nil {
		return domain.Mentee{}, "", err
	}
	if err := s.mirror.RemoveLocal(mentee.ID); err != nil {
		return domain.Mentee{}, "", err
	}
	if err := s.store.Delete(ctx, mentee.Position); err != nil {
		s.mirror.Invalidate()
		return mentee, fmt.Sprintf("removed locally, remote delete failed: %v", err), nil
	}
	if err := s.mirror.Reload(ctx); err != nil {
		return mentee, fmt.Sprintf("removed remotely, reload failed: %v", err), nil
	}
	return mentee, s.reproject(ctx), nil
}

func (s *RosterService) SetCheckpoint(ctx context.Context, selector string, checkpoint int, done bool) (domain.Mentee, string, error) {
	if checkpoint < 1 || checkpoint > 3 {
		return domain.Mentee{}, "", fmt.Errorf("%w: checkpoint must be 1..3, got %d", apperrors.ErrInvalidInput, checkpoint)
	}
	if _, err := s.ensure(ctx); err != nil {
		return domain.Mentee{}, "", err
	}
	mentee, err := s.mirror.Find(selector)
	if err != nil {
		return domain.Mentee{}, "", err
	}
	updated, err := s.mirror.Update(mentee.ID, func(m *domain.Mentee) {
		m.Checkpoints[checkpoint-1] = done
	})
	if err != nil {
		return domain.Mentee{}, "", err
	}
	column := domain.CheckpointColumns[checkpoint-1]
	if err := s.store.SetCell(ctx, updated.Position, column, domain.FormatBool(done)); err != nil {
		return updated, fmt.Sprintf("saved locally, remote write failed: %v", err), nil
	}
	return updated, "", nil
}

// SetCycleDates overwrites both anchor dates. No ordering precondition is
// enforced here: cycle transitions supply their own dates and manual edits
// are validated at the edit surface instead.
func (s *RosterService) SetCycleDates(ctx context.Context, selector string, last, next time.Time) (domain.Mentee, string, error) {
	if _, err := s.ensure(ctx); err != nil {
		return domain.Mentee{}, "", err
	}
	mentee, err := s.mirror.Find(selector)
	if err != nil {
		return domain.Mentee{}, "", err
	}
	updated, err := s.mirror.Update(mentee.ID, func(m *domain.Mentee) {
		m.LastSession = clock.Day(last)
		m.NextSession = clock.Day(next)
		m.DatesValid = true
	})
	if err != nil {
		return domain.Mentee{}, "", err
	}
	var warnings []string
	// Two sequential cell writes, each attempted once. A failure between
	// them leaves a partial remote update by design.
	if err := s.store.SetCell(ctx, updated.Position, domain.ColLastSession, domain.FormatDate(updated.LastSession)); err != nil {
		warnings = append(warnings, fmt.Sprintf("last session date not saved remotely: %v", err))
	}
	if err := s.store.SetCell(ctx, updated.Position, domain.ColNextSession, domain.FormatDate(updated.NextSession)); err != nil {
		warnings = append(warnings, fmt.Sprintf("next session date not saved remotely: %v", err))
	}
	return updated, joinWarnings(warnings...), nil
}

type FieldEdit struct {
	Name           *string
	ContactLink    *string
	LastSession    *time.Time
	NextSession    *time.Time
	ReportWeekday  *domain.Weekday
	NotifyEndpoint *string
}

// Edit updates record fields from the original card form. Checkpoints are
// deliberately untouched so an edited date never wipes tracked work.
func (s *RosterService) Edit(ctx context.Context, selector string, edit FieldEdit) (domain.Mentee, string, error) {
	if _, err := s.ensure(ctx); err != nil {
		return domain.Mentee{}, "", err
	}
	mentee, err := s.mirror.Find(selector)
	if err != nil {
		return domain.Mentee{}, "", err
	}

	// Records with unreadable dates must stay editable, so only the fields
	// the edit can get wrong are validated.
	candidate := mentee
	applyEdit(&candidate, edit)
	if strings.TrimSpace(candidate.Name) == "" {
		return domain.Mentee{}, "", fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	if candidate.DatesValid && candidate.NextSession.Before(candidate.LastSession) {
		return domain.Mentee{}, "", fmt.Errorf("%w: next session precedes last session", apperrors.ErrInvalidInput)
	}

	updated, err := s.mirror.Update(mentee.ID, func(m *domain.Mentee) {
		applyEdit(m, edit)
	})
	if err != nil {
		return domain.Mentee{}, "", err
	}

	var warnings []string
	write := func(column, value string) {
		if err := s.store.SetCell(ctx, updated.Position, column, value); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s not saved remotely: %v", column, err))
		}
	}
	if edit.Name != nil {
		write(domain.ColName, updated.Name)
	}
	if edit.ContactLink != nil {
		write(domain.ColContactLink, updated.ContactLink)
	}
	if edit.LastSession != nil {
		write(domain.ColLastSession, domain.FormatDate(updated.LastSession))
	}
	if edit.NextSession != nil {
		write(domain.ColNextSession, domain.FormatDate(updated.NextSession))
	}
	if edit.ReportWeekday != nil {
		write(domain.ColReportWeekday, updated.ReportWeekday.String())
	}
	if edit.NotifyEndpoint != nil {
		write(domain.ColNotifyEndpoint, updated.NotifyEndpoint)
	}
	return updated, joinWarnings(warnings...), nil
}

func applyEdit(m *domain.Mentee, edit FieldEdit) {
	if edit.Name != nil {
		m.Name = strings.TrimSpace(*edit.Name)
	}
	if edit.ContactLink != nil {
		m.ContactLink = strings.TrimSpace(*edit.ContactLink)
	}
	if edit.LastSession != nil {
		m.LastSession = clock.Day(*edit.LastSession)
	}
	if edit.NextSession != nil {
		m.NextSession = clock.Day(*edit.NextSession)
	}
	if edit.LastSession != nil || edit.NextSession != nil {
		if m.NextSession.IsZero() && !m.LastSession.IsZero() {
			m.NextSession = m.LastSession.AddDate(0, 0, 7)
		}
		m.DatesValid = !m.LastSession.IsZero() && !m.NextSession.IsZero()
	}
	if edit.ReportWeekday != nil {
		m.ReportWeekday = *edit.ReportWeekday
	}
	if edit.NotifyEndpoint != nil {
		m.NotifyEndpoint = strings.TrimSpace(*edit.NotifyEndpoint)
	}
}

// Refresh forces a full reload, discarding any local-only state.
func (s *RosterService) Refresh(ctx context.Context) ([]domain.Mentee, string, error) {
	if err := s.mirror.Reload(ctx); err != nil {
		return nil, "", fmt.Errorf("refresh roster: %w", err)
	}
	return s.mirror.Mentees(), s.reproject(ctx), nil
}

// Reindex rebuilds the read model and fails loudly, unlike the best-effort
// projection during normal operation.
func (s *RosterService) Reindex(ctx context.Context) error {
	if err := s.mirror.Reload(ctx); err != nil {
		return fmt.Errorf("reindex roster: %w", err)
	}
	if err := s.projector.Rebuild(ctx, s.mirror.Mentees()); err != nil {
		return fmt.Errorf("reindex roster: %w", err)
	}
	return nil
}

func joinWarnings(warnings ...string) string {
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if strings.TrimSpace(w) != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, "; ")
}
