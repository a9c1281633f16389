package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

// sagaStep is one forward action of the edit saga. Steps record their own
// per-call progress in the session so a retried step skips finished calls.
type sagaStep struct {
	name string
	run  func(ctx context.Context, s *EditSession) error
}

func (e *editService) steps() []sagaStep {
	return []sagaStep{
		{"update name", e.updateName},
		{"delete numbers", e.deleteNumbers},
		{"add numbers", e.addNumbers},
		{"edit numbers", e.editNumbers},
	}
}

// Save applies s. Validation and the duplicate-name lookup only run before
// anything has been applied; a session with journaled progress continues at
// its first incomplete step.
func (e *editService) Save(ctx context.Context, s *EditSession) (models.Contact, error) {
	if s.invalid {
		return models.Contact{}, common.ErrInvalidSession
	}
	if s.st.Abandoning {
		return models.Contact{}, common.ErrEditInProgress
	}

	if !s.InFlight() {
		if err := e.validate(ctx, s); err != nil {
			return models.Contact{}, err
		}
	}

	if err := e.checkpoint(ctx, s); err != nil {
		return models.Contact{}, err
	}

	log := e.log.With("contact_id", s.st.ContactID, "session_id", s.st.ID)
	steps := e.steps()
	for s.st.Step < len(steps) {
		step := steps[s.st.Step]
		if err := step.run(ctx, s); err != nil {
			log.Warn(ctx, "edit step failed", "step", step.name, "error", err)
			return models.Contact{}, err
		}
		s.st.Step++
		if err := e.checkpoint(ctx, s); err != nil {
			return models.Contact{}, err
		}
		log.Debug(ctx, "edit step done", "step", step.name)
	}

	rec, err := e.client.GetContact(ctx, s.st.ContactID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("refetch contact %d: %w", s.st.ContactID, err)
	}
	if rec == nil {
		s.invalid = true
		if err := e.journal.DeleteCheckpoint(ctx, s.st.ContactID); err != nil {
			log.Warn(ctx, "drop checkpoint failed", "error", err)
		}
		return models.Contact{}, fmt.Errorf("refetch contact %d: %w", s.st.ContactID, common.ErrStaleContact)
	}
	if !rec.Complete() {
		return models.Contact{}, fmt.Errorf("refetch contact %d: %w", s.st.ContactID, common.ErrIncompleteRecord)
	}

	c := rec.ToContact()
	if _, err := e.store.PatchFavorite(ctx, c); err != nil {
		return models.Contact{}, err
	}
	if err := e.journal.DeleteCheckpoint(ctx, s.st.ContactID); err != nil {
		return models.Contact{}, err
	}
	s.rebase(rec)
	log.Info(ctx, "contact updated")
	return c, nil
}

func (e *editService) validate(ctx context.Context, s *EditSession) error {
	if err := ValidateName(s.st.FirstName, s.st.LastName); err != nil {
		return err
	}
	if err := ValidateNumbers(s.values()...); err != nil {
		return err
	}
	if s.nameChanged() {
		return e.checkDuplicateName(ctx, s.st.FirstName, s.st.LastName)
	}
	return nil
}

// updateName sends the changed name fields, or both current values when
// neither changed.
func (e *editService) updateName(ctx context.Context, s *EditSession) error {
	var u models.NameUpdate
	if s.st.FirstName != s.st.LoadedFirstName {
		u.FirstName = &s.st.FirstName
	}
	if s.st.LastName != s.st.LoadedLastName {
		u.LastName = &s.st.LastName
	}
	if u.FirstName == nil && u.LastName == nil {
		u.FirstName, u.LastName = &s.st.FirstName, &s.st.LastName
	}

	if err := e.client.UpdateContact(ctx, s.st.ContactID, u); err != nil {
		return fmt.Errorf("update contact %d: %w", s.st.ContactID, err)
	}
	return nil
}

// deleteNumbers issues the queued deletions. The queue is only cleared once
// every deletion has gone through.
func (e *editService) deleteNumbers(ctx context.Context, s *EditSession) error {
	for _, number := range s.st.PendingDeletes {
		if slices.Contains(s.st.Deleted, number) {
			continue
		}
		if err := ValidateNumbers(number); err != nil {
			return err
		}
		if _, err := e.client.DeletePhone(ctx, s.st.ContactID, number); err != nil {
			return fmt.Errorf("delete phone %q: %w", number, err)
		}
		s.st.Deleted = append(s.st.Deleted, number)
		if err := e.checkpoint(ctx, s); err != nil {
			return err
		}
	}
	s.st.PendingDeletes = []string{}
	return nil
}

func (e *editService) addNumbers(ctx context.Context, s *EditSession) error {
	var fresh []string
	for _, p := range s.st.Phones {
		if !p.Persisted() {
			fresh = append(fresh, p.Value)
		}
	}

	for _, number := range fresh[min(len(s.st.Added), len(fresh)):] {
		if err := e.client.AddPhone(ctx, s.st.ContactID, number); err != nil {
			return fmt.Errorf("add phone %q: %w", number, err)
		}
		s.st.Added = append(s.st.Added, number)
		if err := e.checkpoint(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// editNumbers pairs the persisted entries with the loaded entries of the same
// ids and sends an edit for every changed value.
func (e *editService) editNumbers(ctx context.Context, s *EditSession) error {
	edits, err := phoneEdits(s.st.Loaded, s.st.Phones)
	if err != nil {
		return err
	}

	for _, pe := range edits {
		if slices.ContainsFunc(s.st.Edited, func(done PhoneEdit) bool { return done.ID == pe.ID }) {
			continue
		}
		if err := e.client.EditPhone(ctx, s.st.ContactID, pe.Old, pe.New); err != nil {
			return fmt.Errorf("edit phone %q: %w", pe.Old, err)
		}
		s.st.Edited = append(s.st.Edited, pe)
		if err := e.checkpoint(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// phoneEdits returns the changed (loaded, current) pairs in current order.
// The persisted current entries must match the loaded entries still present
// one to one by id.
func phoneEdits(loaded, current []models.PhoneEntry) ([]PhoneEdit, error) {
	present := make(map[int]struct{})
	var persisted []models.PhoneEntry
	for _, p := range current {
		if p.Persisted() {
			persisted = append(persisted, p)
			present[*p.ID] = struct{}{}
		}
	}

	original := make(map[int]string)
	for _, l := range loaded {
		if l.ID == nil {
			continue
		}
		if _, ok := present[*l.ID]; ok {
			original[*l.ID] = l.Value
		}
	}

	if len(persisted) != len(original) {
		return nil, fmt.Errorf("%w: %d current, %d loaded", common.ErrInconsistentEdit, len(persisted), len(original))
	}

	var edits []PhoneEdit
	for _, p := range persisted {
		old, ok := original[*p.ID]
		if !ok {
			return nil, fmt.Errorf("%w: phone %d was not loaded", common.ErrInconsistentEdit, *p.ID)
		}
		if old != p.Value {
			edits = append(edits, PhoneEdit{ID: *p.ID, Old: old, New: p.Value})
		}
	}
	return edits, nil
}

// Abandon reverts whatever s has applied, newest first: edited numbers get
// their old value back, added numbers are deleted, deleted numbers are added
// again and finally the loaded name is restored. Each compensation is
// journaled, so a failed Abandon can simply be called again.
func (e *editService) Abandon(ctx context.Context, s *EditSession) error {
	log := e.log.With("contact_id", s.st.ContactID, "session_id", s.st.ID)
	id := s.st.ContactID

	if !s.invalid && s.InFlight() {
		s.st.Abandoning = true
		if err := e.checkpoint(ctx, s); err != nil {
			return err
		}

		for len(s.st.Edited) > 0 {
			pe := s.st.Edited[len(s.st.Edited)-1]
			if err := e.client.EditPhone(ctx, id, pe.New, pe.Old); err != nil {
				return fmt.Errorf("revert phone %q: %w", pe.New, err)
			}
			s.st.Edited = s.st.Edited[:len(s.st.Edited)-1]
			if err := e.checkpoint(ctx, s); err != nil {
				return err
			}
		}

		for len(s.st.Added) > 0 {
			number := s.st.Added[len(s.st.Added)-1]
			if _, err := e.client.DeletePhone(ctx, id, number); err != nil {
				return fmt.Errorf("remove added phone %q: %w", number, err)
			}
			s.st.Added = s.st.Added[:len(s.st.Added)-1]
			if err := e.checkpoint(ctx, s); err != nil {
				return err
			}
		}

		for len(s.st.Deleted) > 0 {
			number := s.st.Deleted[len(s.st.Deleted)-1]
			if err := e.client.AddPhone(ctx, id, number); err != nil {
				return fmt.Errorf("restore phone %q: %w", number, err)
			}
			s.st.Deleted = s.st.Deleted[:len(s.st.Deleted)-1]
			if err := e.checkpoint(ctx, s); err != nil {
				return err
			}
		}

		if s.st.Step > 0 {
			u := models.NameUpdate{FirstName: &s.st.LoadedFirstName, LastName: &s.st.LoadedLastName}
			if err := e.client.UpdateContact(ctx, id, u); err != nil {
				return fmt.Errorf("restore name: %w", err)
			}
			s.st.Step = 0
		}
	}

	if err := e.journal.DeleteCheckpoint(ctx, id); err != nil {
		return err
	}
	s.invalid = true
	log.Info(ctx, "edit abandoned")
	return nil
}
