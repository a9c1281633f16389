package services

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/google/uuid"
)

// PhoneEdit is one applied edit-phone call, kept so it can be reverted.
type PhoneEdit struct {
	ID  int    `json:"id"`
	Old string `json:"old"`
	New string `json:"new"`
}

// sessionState is the journaled part of an edit session.
type sessionState struct {
	ID        string              `json:"id"`
	ContactID int                 `json:"contact_id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Phones    []models.PhoneEntry `json:"phones"`

	// as loaded from the server when the session was opened
	LoadedFirstName string              `json:"loaded_first_name"`
	LoadedLastName  string              `json:"loaded_last_name"`
	Loaded          []models.PhoneEntry `json:"loaded_phones"`

	// numbers removed during the session, deleted server-side on save
	PendingDeletes []string `json:"pending_deletes"`

	// saga progress
	Step       int         `json:"step"`
	Deleted    []string    `json:"deleted,omitempty"`
	Added      []string    `json:"added,omitempty"`
	Edited     []PhoneEdit `json:"edited,omitempty"`
	Abandoning bool        `json:"abandoning,omitempty"`
}

// EditSession is the in-memory form of one contact being edited. Changes are
// local until EditService.Save applies them.
type EditSession struct {
	st      sessionState
	invalid bool
}

func newSession(rec *models.ContactRecord) *EditSession {
	phones := rec.Phones
	if phones == nil {
		phones = []models.Phone{}
	}
	return &EditSession{st: sessionState{
		ID:              uuid.NewString(),
		ContactID:       rec.ID,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Phones:          models.EntriesFromPhones(phones),
		LoadedFirstName: rec.FirstName,
		LoadedLastName:  rec.LastName,
		Loaded:          models.EntriesFromPhones(phones),
		PendingDeletes:  []string{},
	}}
}

func (s *EditSession) ID() string     { return s.st.ID }
func (s *EditSession) ContactID() int { return s.st.ContactID }
func (s *EditSession) Step() int      { return s.st.Step }
func (s *EditSession) Invalid() bool  { return s.invalid }
func (s *EditSession) Name() (string, string) {
	return s.st.FirstName, s.st.LastName
}

// Phones returns a copy of the current phone entries.
func (s *EditSession) Phones() []models.PhoneEntry {
	return slices.Clone(s.st.Phones)
}

// PendingDeletes returns the numbers queued for deletion.
func (s *EditSession) PendingDeletes() []string {
	return slices.Clone(s.st.PendingDeletes)
}

// InFlight reports whether part of the session has already been applied
// server-side.
func (s *EditSession) InFlight() bool {
	return s.st.Step > 0 || s.st.Abandoning ||
		len(s.st.Deleted) > 0 || len(s.st.Added) > 0 || len(s.st.Edited) > 0
}

func (s *EditSession) SetName(firstName, lastName string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.st.FirstName, s.st.LastName = firstName, lastName
	return nil
}

// AddNumber appends a number the server has not seen yet.
func (s *EditSession) AddNumber(value string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.st.Phones = append(s.st.Phones, models.PhoneEntry{Value: value})
	return nil
}

func (s *EditSession) SetNumber(i int, value string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.st.Phones) {
		return fmt.Errorf("no phone at position %d", i)
	}
	s.st.Phones[i].Value = value
	return nil
}

// RemoveNumber drops the entry at i. A persisted entry queues the value it
// was loaded with for deletion, whatever it was changed to since.
func (s *EditSession) RemoveNumber(i int) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.st.Phones) {
		return fmt.Errorf("no phone at position %d", i)
	}

	p := s.st.Phones[i]
	if p.Persisted() {
		value := p.Value
		if j := slices.IndexFunc(s.st.Loaded, func(l models.PhoneEntry) bool {
			return l.ID != nil && *l.ID == *p.ID
		}); j >= 0 {
			value = s.st.Loaded[j].Value
		}
		if !slices.Contains(s.st.PendingDeletes, value) {
			s.st.PendingDeletes = append(s.st.PendingDeletes, value)
		}
	}
	s.st.Phones = slices.Delete(s.st.Phones, i, i+1)
	return nil
}

func (s *EditSession) mutable() error {
	if s.invalid {
		return common.ErrInvalidSession
	}
	if s.InFlight() {
		return common.ErrEditInProgress
	}
	return nil
}

func (s *EditSession) nameChanged() bool {
	return s.st.FirstName != s.st.LoadedFirstName || s.st.LastName != s.st.LoadedLastName
}

func (s *EditSession) values() []string {
	out := make([]string, 0, len(s.st.Phones))
	for _, p := range s.st.Phones {
		out = append(out, p.Value)
	}
	return out
}

// rebase starts the session over from a freshly fetched record.
func (s *EditSession) rebase(rec *models.ContactRecord) {
	s.st = newSession(rec).st
}
