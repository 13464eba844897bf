package service

import (
	"sync"
	"time"

	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/wizard"

	"github.com/google/uuid"
)

type wizardEntry struct {
	mu    sync.Mutex
	owner string
	w     *wizard.Wizard

	// touched is guarded by WizardStore.mu.
	touched time.Time
}

// WizardStore keeps in-progress wizards in memory. Each wizard has its own
// lock so requests from one browser are applied one at a time.
type WizardStore struct {
	mu      sync.Mutex
	entries map[string]*wizardEntry
	now     func() time.Time
}

func NewWizardStore() *WizardStore {
	return &WizardStore{entries: map[string]*wizardEntry{}, now: time.Now}
}

func (s *WizardStore) Create(owner string, origin wizard.Origin) (*wizard.Wizard, error) {
	w, err := wizard.New(uuid.NewString(), origin)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.entries[w.ID()] = &wizardEntry{owner: owner, w: w, touched: s.now()}
	s.mu.Unlock()
	return w, nil
}

// With runs fn while holding the wizard's lock.
func (s *WizardStore) With(owner, id string, fn func(*wizard.Wizard) error) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && e.owner == owner {
		e.touched = s.now()
	}
	s.mu.Unlock()
	if !ok || e.owner != owner {
		return apperrors.ErrNotFound("booking not found")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.w)
}

func (s *WizardStore) Exists(owner, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return ok && e.owner == owner
}

func (s *WizardStore) Delete(owner, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.owner != owner {
		return false
	}
	delete(s.entries, id)
	return true
}

// DeleteOwner drops every wizard of a session.
func (s *WizardStore) DeleteOwner(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.owner == owner {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Sweep removes wizards idle since before cutoff.
func (s *WizardStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
