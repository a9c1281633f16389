// Package store is the reconciliation engine: it owns the partition of known
// contacts into a regular and a favorite list, the pagination cursor, and
// keeps both lists written through to the local cache.
//
// Invariants:
//   - a contact id is in at most one of the two lists;
//   - the cursor only grows, and only by the number of records a page fetch
//     actually appended to the regular list;
//   - every successful mutation has been persisted before it returns.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/cache"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

type Store struct {
	mu sync.RWMutex

	cache cache.Repository

	regular  []models.Contact
	favorite []models.Contact
	cursor   int

	// set when a favorite went back to the regular list, so the next page
	// fetch can top the regular list up
	needsTopUp bool

	// ids whose server-side delete is in flight; hidden from the views
	pending map[int]struct{}
}

func New(c cache.Repository) *Store {
	return &Store{cache: c, pending: make(map[int]struct{})}
}

// Load seeds the partition from the cache. Regular contacts that are also
// favorites are dropped from the regular list. The cursor starts at zero.
func (s *Store) Load(ctx context.Context) error {
	favorite, err := s.cache.Load(ctx, common.SlotFavorites)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	regular, err := s.cache.Load(ctx, common.SlotContacts)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}

	favIDs := idSet(favorite)
	regular = slices.DeleteFunc(regular, func(c models.Contact) bool {
		_, fav := favIDs[c.ID]
		return fav
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorite = favorite
	s.regular = regular
	s.cursor = 0
	s.needsTopUp = false
	s.pending = make(map[int]struct{})
	return nil
}

// Reconcile appends every record of page whose id is in neither list to the
// regular list and advances the cursor by the number appended. Records that
// are already favorites are never copied into the regular list.
func (s *Store) Reconcile(ctx context.Context, page []models.Contact) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := idSet(s.regular)
	for id := range idSet(s.favorite) {
		known[id] = struct{}{}
	}

	regular := slices.Clone(s.regular)
	appended := 0
	for _, c := range page {
		if _, ok := known[c.ID]; ok {
			continue
		}
		known[c.ID] = struct{}{}
		regular = append(regular, c)
		appended++
	}
	if appended == 0 {
		s.needsTopUp = false
		return 0, nil
	}

	if err := s.persist(ctx, regular, s.favorite); err != nil {
		return 0, err
	}
	s.regular = regular
	s.cursor += appended
	s.needsTopUp = false
	return appended, nil
}

// MarkFavorite moves id from the regular list to the end of the favorite list.
func (s *Store) MarkFavorite(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.regular, id)
	if i < 0 {
		if indexOf(s.favorite, id) >= 0 {
			return nil
		}
		return fmt.Errorf("mark favorite %d: %w", id, common.ErrContactNotFound)
	}

	c := s.regular[i]
	regular := slices.Delete(slices.Clone(s.regular), i, i+1)
	favorite := append(slices.Clone(s.favorite), c)
	if err := s.persist(ctx, regular, favorite); err != nil {
		return err
	}
	s.regular, s.favorite = regular, favorite
	return nil
}

// UnmarkFavorite moves id from the favorite list to the end of the regular
// list and flags the regular list for a top-up.
func (s *Store) UnmarkFavorite(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.favorite, id)
	if i < 0 {
		if indexOf(s.regular, id) >= 0 {
			return nil
		}
		return fmt.Errorf("unmark favorite %d: %w", id, common.ErrContactNotFound)
	}

	c := s.favorite[i]
	favorite := slices.Delete(slices.Clone(s.favorite), i, i+1)
	regular := append(slices.Clone(s.regular), c)
	if err := s.persist(ctx, regular, favorite); err != nil {
		return err
	}
	s.regular, s.favorite = regular, favorite
	s.needsTopUp = true
	return nil
}

// ToggleFavorite flips the list id belongs to and reports whether it is a
// favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	if s.IsFavorite(id) {
		return false, s.UnmarkFavorite(ctx, id)
	}
	return true, s.MarkFavorite(ctx, id)
}

// Remove drops id from whichever list holds it.
func (s *Store) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, id)

	regular := slices.DeleteFunc(slices.Clone(s.regular), func(c models.Contact) bool { return c.ID == id })
	favorite := slices.DeleteFunc(slices.Clone(s.favorite), func(c models.Contact) bool { return c.ID == id })
	if len(regular) == len(s.regular) && len(favorite) == len(s.favorite) {
		return nil
	}
	if err := s.persist(ctx, regular, favorite); err != nil {
		return err
	}
	s.regular, s.favorite = regular, favorite
	return nil
}

// MarkPendingDelete hides id from the views while its server-side delete is
// in flight. The contact stays in the partition and in the cache.
func (s *Store) MarkPendingDelete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = struct{}{}
}

// ClearPendingDelete makes id visible again.
func (s *Store) ClearPendingDelete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// PatchFavorite replaces the favorite entry with c's id. Regular contacts are
// left alone; they are refreshed by later page fetches.
func (s *Store) PatchFavorite(ctx context.Context, c models.Contact) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.favorite, c.ID)
	if i < 0 {
		return false, nil
	}
	favorite := slices.Clone(s.favorite)
	favorite[i] = c
	if err := s.persist(ctx, s.regular, favorite); err != nil {
		return false, err
	}
	s.favorite = favorite
	return true, nil
}

// Search returns the visible contacts of each list whose name contains query,
// ignoring case. It never modifies the lists.
func (s *Store) Search(query string) (regular, favorite []models.Contact) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match := func(c models.Contact) bool { return c.MatchesName(query) }
	return s.visible(s.regular, match), s.visible(s.favorite, match)
}

// Regular returns a copy of the visible regular list.
func (s *Store) Regular() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible(s.regular, nil)
}

// Favorites returns a copy of the visible favorite list.
func (s *Store) Favorites() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible(s.favorite, nil)
}

func (s *Store) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

func (s *Store) NeedsTopUp() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.needsTopUp
}

func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.favorite, id) >= 0
}

// Lookup finds id in either list, pending deletes included.
func (s *Store) Lookup(id int) (models.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.favorite, id); i >= 0 {
		return s.favorite[i], true
	}
	if i := indexOf(s.regular, id); i >= 0 {
		return s.regular[i], true
	}
	return models.Contact{}, false
}

func (s *Store) persist(ctx context.Context, regular, favorite []models.Contact) error {
	if err := s.cache.SavePartition(ctx, regular, favorite); err != nil {
		return fmt.Errorf("persist contacts: %w", err)
	}
	return nil
}

func (s *Store) visible(list []models.Contact, match func(models.Contact) bool) []models.Contact {
	out := make([]models.Contact, 0, len(list))
	for _, c := range list {
		if _, hidden := s.pending[c.ID]; hidden {
			continue
		}
		if match != nil && !match(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func indexOf(list []models.Contact, id int) int {
	return slices.IndexFunc(list, func(c models.Contact) bool { return c.ID == id })
}

func idSet(list []models.Contact) map[int]struct{} {
	set := make(map[int]struct{}, len(list))
	for _, c := range list {
		set[c.ID] = struct{}{}
	}
	return set
}
