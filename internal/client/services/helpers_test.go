package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/client/client"
	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/cache"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/journal"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type harness struct {
	fc       *fakeClient
	store    *store.Store
	journal  *journal.SQLiteRepository
	editor   EditService
	contacts ContactService
}

func setup(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fc := newFakeClient()
	st := store.New(cache.NewSQLiteRepository(db))
	require.NoError(t, st.Load(ctx))
	j := journal.NewSQLiteRepository(db)

	return &harness{
		fc:       fc,
		store:    st,
		journal:  j,
		editor:   NewEditService(fc, st, j, nil),
		contacts: NewContactService(fc, st, j, 10, nil),
	}
}

// seedAnn stores contact 7 {Ann Lee, [1:"555"]} remotely and locally as a
// favorite.
func (h *harness) seedAnn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	rec := models.ContactRecord{
		ID: 7, FirstName: "Ann", LastName: "Lee",
		Phones: []models.Phone{{ID: intp(1), Number: "555"}},
	}
	h.fc.seed(rec)
	_, err := h.store.Reconcile(ctx, []models.Contact{rec.ToContact()})
	require.NoError(t, err)
	require.NoError(t, h.store.MarkFavorite(ctx, 7))
}

func (h *harness) checkpoint(t *testing.T, contactID int) *journal.Checkpoint {
	t.Helper()
	cp, err := h.journal.LoadCheckpoint(context.Background(), contactID)
	require.NoError(t, err)
	return cp
}
