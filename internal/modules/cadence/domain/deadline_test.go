package domain_test

import (
	"testing"
	"time"

	"mcad/internal/modules/cadence/domain"
	rosterdomain "mcad/internal/modules/roster/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDeadlinesAnchorOffsets(t *testing.T) {
	t.Parallel()
	last := date(2024, 6, 3)
	next := date(2024, 6, 10)
	got := domain.ComputeDeadlines(last, next, rosterdomain.Wednesday)
	if !got.Encouragement.Equal(date(2024, 6, 4)) {
		t.Fatalf("encouragement = %s, want day after session", got.Encouragement)
	}
	if !got.Prework.Equal(date(2024, 6, 9)) {
		t.Fatalf("prework = %s, want day before next session", got.Prework)
	}
}

func TestReportDeadlineFirstWeekdayAfterSession(t *testing.T) {
	t.Parallel()
	// 2024-06-03 is a Monday.
	got := domain.ComputeDeadlines(date(2024, 6, 3), date(2024, 6, 10), rosterdomain.Wednesday)
	if !got.Report.Equal(date(2024, 6, 5)) {
		t.Fatalf("report = %s, want 2024-06-05", got.Report)
	}
}

func TestReportDeadlineSameWeekdayRollsAFullWeek(t *testing.T) {
	t.Parallel()
	// Session on a Wednesday with a Wednesday report day.
	got := domain.ComputeDeadlines(date(2024, 6, 5), date(2024, 6, 12), rosterdomain.Wednesday)
	if !got.Report.Equal(date(2024, 6, 12)) {
		t.Fatalf("report = %s, want the following Wednesday", got.Report)
	}
}

func TestReportDeadlineStaysInsideStandardCadence(t *testing.T) {
	t.Parallel()
	for day := rosterdomain.Monday; day <= rosterdomain.Sunday; day++ {
		for start := 0; start < 7; start++ {
			last := date(2024, 6, 3).AddDate(0, 0, start)
			next := last.AddDate(0, 0, 7)
			got := domain.ComputeDeadlines(last, next, day)
			if !got.Report.After(last) || got.Report.After(next) {
				t.Fatalf("report %s outside (%s, %s] for day %s", got.Report, last, next, day)
			}
		}
	}
}
