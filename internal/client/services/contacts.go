// Package services contains the application services of the contactbook
// client. ContactService covers the list operations (load, paging, search,
// favorites, delete); EditService runs the add and edit workflows.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/journal"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"golang.org/x/sync/singleflight"
)

const orderByCreatedAt = "created_at"

// PageResult describes one FetchNextPage call.
type PageResult struct {
	Fetched   int  // records returned by the server
	Appended  int  // records new to both lists
	Cursor    int  // cursor after the fetch
	Exhausted bool // the server returned less than a full page
}

// ContactService defines the list operations used by the CLI.
//
// Contract:
//   - Load: restore the lists from the local cache and finish deletes that
//     were interrupted by a restart.
//   - FetchNextPage: fetch the page at the cursor and reconcile it into the
//     regular list. Concurrent calls share one request.
//   - Search: filter both lists locally by name.
//   - SearchRemote: query the server by name without touching the lists.
//   - ToggleFavorite: move a contact between the lists.
//   - Delete: delete a contact server-side, keeping it hidden locally until
//     the server confirms.
type ContactService interface {
	Load(ctx context.Context) error
	FetchNextPage(ctx context.Context) (PageResult, error)
	Search(query string) (regular, favorite []models.Contact)
	SearchRemote(ctx context.Context, query string) ([]models.Contact, error)
	ToggleFavorite(ctx context.Context, id int) (bool, error)
	Delete(ctx context.Context, id int) error
	Close() error
}

type contactService struct {
	client   client.Client
	store    *store.Store
	journal  journal.Repository
	pageSize int
	log      logging.Logger

	pages singleflight.Group
}

func NewContactService(c client.Client, st *store.Store, j journal.Repository, pageSize int, log logging.Logger) ContactService {
	if log == nil {
		log = logging.Nop()
	}
	return &contactService{
		client:   c,
		store:    st,
		journal:  j,
		pageSize: pageSize,
		log:      log.With("component", "contacts"),
	}
}

func (s *contactService) Load(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		return err
	}

	pending, err := s.journal.PendingDeletes(ctx)
	if err != nil {
		return err
	}
	for _, id := range pending {
		s.log.Info(ctx, "resuming interrupted delete", "contact_id", id)
		if err := s.delete(ctx, id); err != nil {
			s.log.Warn(ctx, "resumed delete failed", "contact_id", id, "error", err)
		}
	}
	return nil
}

func (s *contactService) FetchNextPage(ctx context.Context) (PageResult, error) {
	v, err, shared := s.pages.Do("next", func() (any, error) {
		return s.fetchNextPage(ctx)
	})
	if err != nil {
		return PageResult{}, err
	}
	if shared {
		s.log.Debug(ctx, "page fetch shared with a concurrent caller")
	}
	return v.(PageResult), nil
}

func (s *contactService) fetchNextPage(ctx context.Context) (PageResult, error) {
	offset := s.store.Cursor()
	recs, err := s.client.ListContacts(ctx, models.ListParams{
		Limit:   s.pageSize,
		Offset:  offset,
		OrderBy: orderByCreatedAt,
	})
	if err != nil {
		return PageResult{}, fmt.Errorf("list contacts: %w", err)
	}

	appended, err := s.store.Reconcile(ctx, project(recs))
	if err != nil {
		return PageResult{}, err
	}

	res := PageResult{
		Fetched:   len(recs),
		Appended:  appended,
		Cursor:    s.store.Cursor(),
		Exhausted: len(recs) < s.pageSize,
	}
	s.log.Debug(ctx, "page fetched", "offset", offset, "fetched", res.Fetched, "appended", res.Appended)
	return res, nil
}

func (s *contactService) Search(query string) (regular, favorite []models.Contact) {
	return s.store.Search(query)
}

func (s *contactService) SearchRemote(ctx context.Context, query string) ([]models.Contact, error) {
	recs, err := s.client.ListContacts(ctx, models.ListParams{
		Limit:   s.pageSize,
		OrderBy: orderByCreatedAt,
		Filter:  query,
	})
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	return project(recs), nil
}

// ToggleFavorite flips id between the lists. Moving a contact back to the
// regular list refreshes the first page, the way the list is topped up after
// an unfavorite; a failed refresh is logged, not returned.
func (s *contactService) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	fav, err := s.store.ToggleFavorite(ctx, id)
	if err != nil {
		return fav, err
	}
	if !fav && s.store.NeedsTopUp() {
		if err := s.topUp(ctx); err != nil {
			s.log.Warn(ctx, "top-up after unfavorite failed", "error", err)
		}
	}
	return fav, nil
}

func (s *contactService) topUp(ctx context.Context) error {
	recs, err := s.client.ListContacts(ctx, models.ListParams{
		Limit:   s.pageSize,
		OrderBy: orderByCreatedAt,
	})
	if err != nil {
		return err
	}
	_, err = s.store.Reconcile(ctx, project(recs))
	return err
}

func (s *contactService) Delete(ctx context.Context, id int) error {
	if _, ok := s.store.Lookup(id); !ok {
		return fmt.Errorf("delete contact %d: %w", id, common.ErrContactNotFound)
	}
	return s.delete(ctx, id)
}

// delete is the two-phase delete: the contact is hidden and journaled first,
// then removed locally once the server confirms, or made visible again if the
// server call fails.
func (s *contactService) delete(ctx context.Context, id int) error {
	if err := s.journal.MarkPendingDelete(ctx, id); err != nil {
		return err
	}
	s.store.MarkPendingDelete(id)

	if _, err := s.client.DeleteContact(ctx, id); err != nil {
		s.store.ClearPendingDelete(id)
		if cerr := s.journal.ClearPendingDelete(ctx, id); cerr != nil {
			s.log.Warn(ctx, "clear pending delete failed", "contact_id", id, "error", cerr)
		}
		return fmt.Errorf("delete contact %d: %w", id, err)
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	if err := s.journal.DeleteCheckpoint(ctx, id); err != nil {
		s.log.Warn(ctx, "drop edit checkpoint failed", "contact_id", id, "error", err)
	}
	if err := s.journal.ClearPendingDelete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "contact deleted", "contact_id", id)
	return nil
}

func (s *contactService) Close() error {
	return s.client.Close()
}

func project(recs []models.ContactRecord) []models.Contact {
	out := make([]models.Contact, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ToContact())
	}
	return out
}
