package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mcad/internal/modules/cadence/domain"
	cadenceout "mcad/internal/modules/cadence/port/out"
	rosterdomain "mcad/internal/modules/roster/domain"
	rosterdto "mcad/internal/modules/roster/dto"
	rosterin "mcad/internal/modules/roster/port/in"
	"mcad/internal/platform/clock"
	apperrors "mcad/internal/platform/errors"
)

// CadenceService drives the cycle state machine on top of the roster
// module. Closing a cycle writes in a fixed order: history append first,
// then the anchor dates, then the checkpoint resets. A failure before the
// history append aborts; after it, the worst partial outcome is "history
// exists, record not yet reset", never a lost history record.
type CadenceService struct {
	clock     clock.Clock
	roster    rosterin.Usecase
	history   cadenceout.HistoryStore
	projector cadenceout.HistoryProjector
}

func NewCadenceService(clk clock.Clock, roster rosterin.Usecase, history cadenceout.HistoryStore, projector cadenceout.HistoryProjector) *CadenceService {
	return &CadenceService{clock: clk, roster: roster, history: history, projector: projector}
}

// Toggle flips one checkpoint. The flip lands in the mirror immediately;
// the returned sync status reports the single remote cell write.
func (s *CadenceService) Toggle(ctx context.Context, selector string, checkpoint int) (rosterdto.MutationOutput, error) {
	if checkpoint < 1 || checkpoint > 3 {
		return rosterdto.MutationOutput{}, fmt.Errorf("%w: checkpoint must be 1..3, got %d", apperrors.ErrInvalidInput, checkpoint)
	}
	mentee, err := s.roster.Get(ctx, selector)
	if err != nil {
		return rosterdto.MutationOutput{}, err
	}
	return s.roster.SetCheckpoint(ctx, rosterdto.SetCheckpointInput{
		Selector:   mentee.ID,
		Checkpoint: checkpoint,
		Done:       !mentee.Checkpoints[checkpoint-1],
	})
}

// FinishCycle archives the current checkpoint outcomes, advances the
// anchor dates and resets all checkpoints. Zero dates default to today and
// today plus seven days.
func (s *CadenceService) FinishCycle(ctx context.Context, selector string, newLast, newNext time.Time) (rosterdto.MenteeOutput, domain.HistoryEntry, string, error) {
	mentee, err := s.roster.Get(ctx, selector)
	if err != nil {
		return rosterdto.MenteeOutput{}, domain.HistoryEntry{}, "", err
	}
	today := clock.Day(s.clock.Now())
	if newLast.IsZero() {
		newLast = today
	}
	newLast = clock.Day(newLast)
	if newNext.IsZero() {
		newNext = newLast.AddDate(0, 0, 7)
	}
	newNext = clock.Day(newNext)
	if newNext.Before(newLast) {
		return rosterdto.MenteeOutput{}, domain.HistoryEntry{}, "", fmt.Errorf("%w: new next session precedes new last session", apperrors.ErrInvalidInput)
	}
	return s.finish(ctx, mentee, today, newLast, newNext)
}

func (s *CadenceService) finish(ctx context.Context, mentee rosterdto.MenteeOutput, today, newLast, newNext time.Time) (rosterdto.MenteeOutput, domain.HistoryEntry, string, error) {
	entry := domain.HistoryEntry{
		LoggedDate:  today,
		MenteeName:  mentee.Name,
		Checkpoints: mentee.Checkpoints,
	}
	// The archive write goes first and is the only fatal step: without it
	// the prior cycle's outcomes would be lost by the resets below.
	if err := s.history.Append(ctx, entry); err != nil {
		return rosterdto.MenteeOutput{}, domain.HistoryEntry{}, "", fmt.Errorf("archive cycle for %s: %w", mentee.Name, err)
	}
	var warnings []string
	if err := s.projector.Append(ctx, entry); err != nil {
		warnings = append(warnings, fmt.Sprintf("history log not updated: %v", err))
	}

	out, err := s.roster.SetCycleDates(ctx, rosterdto.SetCycleDatesInput{
		Selector:    mentee.ID,
		LastSession: newLast,
		NextSession: newNext,
	})
	if err != nil {
		return rosterdto.MenteeOutput{}, entry, "", err
	}
	if out.SyncWarning != "" {
		warnings = append(warnings, out.SyncWarning)
	}
	current := out.Mentee
	for i, done := range mentee.Checkpoints {
		if !done {
			continue
		}
		reset, err := s.roster.SetCheckpoint(ctx, rosterdto.SetCheckpointInput{
			Selector:   mentee.ID,
			Checkpoint: i + 1,
			Done:       false,
		})
		if err != nil {
			return current, entry, joinWarnings(warnings), err
		}
		if reset.SyncWarning != "" {
			warnings = append(warnings, reset.SyncWarning)
		}
		current = reset.Mentee
	}
	return current, entry, joinWarnings(warnings), nil
}

// BatchFinish closes every cycle whose next session date has arrived,
// advancing each by the standard week. Records with a future next session
// or unreadable dates are skipped untouched.
func (s *CadenceService) BatchFinish(ctx context.Context) (int, int, []string, error) {
	list, err := s.roster.List(ctx)
	if err != nil {
		return 0, 0, nil, err
	}
	var warnings []string
	if list.Warning != "" {
		warnings = append(warnings, list.Warning)
	}
	today := clock.Day(s.clock.Now())
	processed, skipped := 0, 0
	for _, mentee := range list.Mentees {
		if !mentee.DatesValid || mentee.NextSession.After(today) {
			skipped++
			continue
		}
		newLast := clock.Day(mentee.NextSession)
		_, _, warning, err := s.finish(ctx, mentee, today, newLast, newLast.AddDate(0, 0, 7))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", mentee.Name, err))
			continue
		}
		if warning != "" {
			warnings = append(warnings, fmt.Sprintf("%s: %s", mentee.Name, warning))
		}
		processed++
	}
	return processed, skipped, warnings, nil
}

// Alerts evaluates every roster record against today. Evaluation is
// fail-soft per record: unreadable dates drop a record from the result
// without affecting the others.
func (s *CadenceService) Alerts(ctx context.Context) (time.Time, []domain.Alert, []domain.Alert, string, error) {
	list, err := s.roster.List(ctx)
	if err != nil {
		return time.Time{}, nil, nil, "", err
	}
	today := clock.Day(s.clock.Now())
	var alerts, dueToday []domain.Alert
	for _, mentee := range list.Mentees {
		record := toCycleRecord(mentee)
		alerts = append(alerts, domain.EvaluateAlerts(today, record)...)
		if domain.ReportDueToday(today, record) {
			dueToday = append(dueToday, domain.Alert{
				MenteeID:   record.MenteeID,
				MenteeName: record.MenteeName,
				Checkpoint: 2,
				Reason:     "report due today",
			})
		}
	}
	return today, alerts, dueToday, list.Warning, nil
}

func (s *CadenceService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.history.List(ctx)
}

// ReindexHistory rebuilds the history read model from a full remote read.
func (s *CadenceService) ReindexHistory(ctx context.Context) error {
	entries, err := s.history.List(ctx)
	if err != nil {
		return err
	}
	return s.projector.Rebuild(ctx, entries)
}

func toCycleRecord(mentee rosterdto.MenteeOutput) domain.CycleRecord {
	weekday, _ := rosterdomain.ParseWeekday(mentee.ReportWeekday)
	return domain.CycleRecord{
		MenteeID:      mentee.ID,
		MenteeName:    mentee.Name,
		LastSession:   mentee.LastSession,
		NextSession:   mentee.NextSession,
		DatesValid:    mentee.DatesValid,
		ReportWeekday: weekday,
		Checkpoints:   mentee.Checkpoints,
	}
}

func joinWarnings(warnings []string) string {
	return strings.Join(warnings, "; ")
}
