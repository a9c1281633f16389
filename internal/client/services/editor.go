package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/journal"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// EditService runs the add and edit workflows against the remote service.
//
// Contract:
//   - Add: validate, reject duplicate names, create the contact with its
//     numbers in one call and append it to the regular list.
//   - Open: load a contact into a new EditSession.
//   - Save: validate, then apply the session as an ordered saga (name,
//     removed numbers, added numbers, changed numbers, re-fetch, patch).
//     Progress is journaled so a failed Save can be retried or resumed.
//   - Resume: reload a journaled session, e.g. after a restart.
//   - Abandon: revert the applied steps of a session and drop its journal.
type EditService interface {
	Add(ctx context.Context, firstName, lastName string, numbers []string) (models.Contact, error)
	Open(ctx context.Context, id int) (*EditSession, error)
	Save(ctx context.Context, s *EditSession) (models.Contact, error)
	Resume(ctx context.Context, contactID int) (*EditSession, error)
	Abandon(ctx context.Context, s *EditSession) error
}

type editService struct {
	client  client.Client
	store   *store.Store
	journal journal.Repository
	log     logging.Logger
}

func NewEditService(c client.Client, st *store.Store, j journal.Repository, log logging.Logger) EditService {
	if log == nil {
		log = logging.Nop()
	}
	return &editService{client: c, store: st, journal: j, log: log.With("component", "editor")}
}

func (e *editService) Add(ctx context.Context, firstName, lastName string, numbers []string) (models.Contact, error) {
	if err := ValidateName(firstName, lastName); err != nil {
		return models.Contact{}, err
	}
	if err := ValidateNumbers(numbers...); err != nil {
		return models.Contact{}, err
	}
	if err := e.checkDuplicateName(ctx, firstName, lastName); err != nil {
		return models.Contact{}, err
	}

	rec, err := e.client.CreateContact(ctx, firstName, lastName, numbers)
	if err != nil {
		return models.Contact{}, fmt.Errorf("create contact: %w", err)
	}

	c := rec.ToContact()
	if _, err := e.store.Reconcile(ctx, []models.Contact{c}); err != nil {
		return c, err
	}
	e.log.Info(ctx, "contact created", "contact_id", c.ID)
	return c, nil
}

func (e *editService) Open(ctx context.Context, id int) (*EditSession, error) {
	cp, err := e.journal.LoadCheckpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp != nil {
		return nil, fmt.Errorf("open contact %d: %w", id, common.ErrEditInProgress)
	}

	rec, err := e.client.GetContact(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact %d: %w", id, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("open contact %d: %w", id, common.ErrStaleContact)
	}
	return newSession(rec), nil
}

func (e *editService) Resume(ctx context.Context, contactID int) (*EditSession, error) {
	cp, err := e.journal.LoadCheckpoint(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("resume contact %d: %w", contactID, common.ErrNoPendingEdit)
	}

	s := &EditSession{}
	if err := json.Unmarshal(cp.State, &s.st); err != nil {
		return nil, fmt.Errorf("decode checkpoint[%d]: %w", contactID, err)
	}
	s.st.Step = cp.Step
	e.log.Debug(ctx, "edit session resumed", "contact_id", contactID, "session_id", cp.SessionID, "step", cp.Step)
	return s, nil
}

// checkDuplicateName fails with ErrDuplicateName if any remote contact
// carries exactly this name.
func (e *editService) checkDuplicateName(ctx context.Context, firstName, lastName string) error {
	matches, err := e.client.FindByName(ctx, firstName, lastName)
	if err != nil {
		return fmt.Errorf("find by name: %w", err)
	}
	if len(matches) > 0 {
		return common.ErrDuplicateName
	}
	return nil
}

// checkpoint journals the session with its current progress.
func (e *editService) checkpoint(ctx context.Context, s *EditSession) error {
	state, err := json.Marshal(s.st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return e.journal.SaveCheckpoint(ctx, journal.Checkpoint{
		ContactID: s.st.ContactID,
		SessionID: s.st.ID,
		Step:      s.st.Step,
		State:     state,
	})
}
