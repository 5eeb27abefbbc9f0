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
	"mcad/internal/platform/id"
)

// Mirror is the in-process snapshot of the primary table. Reads never touch
// the remote store directly: the mirror reloads itself on first use, when
// its TTL lapses, or on explicit request, and each reload replaces the
// snapshot wholesale. Local mutations apply immediately; whatever the
// remote store confirmed is re-established by the next reload.
//
// A Mirror belongs to one session and is not safe for concurrent mutation.
type Mirror struct {
	store    rosterout.RosterStore
	clock    clock.Clock
	idGen    id.Generator
	ttl      time.Duration
	mentees  []domain.Mentee
	loaded   bool
	loadedAt time.Time
}

func NewMirror(store rosterout.RosterStore, clk clock.Clock, idGen id.Generator, ttl time.Duration) *Mirror {
	return &Mirror{store: store, clock: clk, idGen: idGen, ttl: ttl}
}

// Ensure makes the snapshot usable and reports whether it reloaded. A
// failed reload degrades to the previous snapshot with a warning; without
// any previous snapshot it is an error.
func (m *Mirror) Ensure(ctx context.Context) (bool, string, error) {
	if m.loaded && m.clock.Now().Sub(m.loadedAt) < m.ttl {
		return false, "", nil
	}
	if err := m.Reload(ctx); err != nil {
		if m.loaded {
			return false, fmt.Sprintf("serving cached roster: %v", err), nil
		}
		return false, "", fmt.Errorf("%w: %v", apperrors.ErrMirrorUnavailable, err)
	}
	return true, "", nil
}

// Reload replaces the snapshot from the remote store and assigns fresh
// opaque row keys.
func (m *Mirror) Reload(ctx context.Context) error {
	mentees, err := m.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range mentees {
		mentees[i].ID = m.idGen.New()
		mentees[i].Position = i
	}
	m.mentees = mentees
	m.loaded = true
	m.loadedAt = m.clock.Now()
	return nil
}

// Invalidate forces the next Ensure to reload.
func (m *Mirror) Invalidate() {
	m.loadedAt = time.Time{}
}

func (m *Mirror) Mentees() []domain.Mentee {
	out := make([]domain.Mentee, len(m.mentees))
	copy(out, m.mentees)
	return out
}

// Find resolves a selector against the snapshot: exact id match first, then
// unique case-insensitive name match.
func (m *Mirror) Find(selector string) (domain.Mentee, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return domain.Mentee{}, fmt.Errorf("%w: selector is required", apperrors.ErrInvalidInput)
	}
	for _, mentee := range m.mentees {
		if mentee.ID == selector {
			return mentee, nil
		}
	}
	found := -1
	for i, mentee := range m.mentees {
		if strings.EqualFold(mentee.Name, selector) {
			if found >= 0 {
				return domain.Mentee{}, fmt.Errorf("%w: %q", apperrors.ErrAmbiguousSelector, selector)
			}
			found = i
		}
	}
	if found < 0 {
		return domain.Mentee{}, fmt.Errorf("%w: mentee %q", apperrors.ErrNotFound, selector)
	}
	return m.mentees[found], nil
}

// Update applies a local mutation to the identified row and returns the
// updated copy.
func (m *Mirror) Update(menteeID string, mutate func(*domain.Mentee)) (domain.Mentee, error) {
	for i := range m.mentees {
		if m.mentees[i].ID == menteeID {
			mutate(&m.mentees[i])
			return m.mentees[i], nil
		}
	}
	return domain.Mentee{}, fmt.Errorf("%w: mentee %q", apperrors.ErrNotFound, menteeID)
}

// AppendLocal adds a row to the snapshot at the position a successful
// remote append would give it.
func (m *Mirror) AppendLocal(mentee domain.Mentee) domain.Mentee {
	mentee.ID = m.idGen.New()
	mentee.Position = len(m.mentees)
	m.mentees = append(m.mentees, mentee)
	return mentee
}

// RemoveLocal drops a row and compacts the positions of the rows after it.
func (m *Mirror) RemoveLocal(menteeID string) error {
	for i := range m.mentees {
		if m.mentees[i].ID == menteeID {
			m.mentees = append(m.mentees[:i], m.mentees[i+1:]...)
			for j := i; j < len(m.mentees); j++ {
				m.mentees[j].Position = j
			}
			return nil
		}
	}
	return fmt.Errorf("%w: mentee %q", apperrors.ErrNotFound, menteeID)
}
