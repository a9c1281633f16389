package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_RenameRemoveAndAdd(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	h.fc.reset()

	require.NoError(t, s.SetName("Ann", "Lane"))
	require.NoError(t, s.RemoveNumber(0))
	require.NoError(t, s.AddNumber("777"))

	got, err := h.editor.Save(ctx, s)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"find Ann Lane",
		"update 7 last_name=Lane",
		"delete-phone 7 555",
		"add-phone 7 777",
		"get 7",
	}, h.fc.Calls())
	assert.Equal(t, models.Contact{ID: 7, Name: "Ann Lane", Numbers: []string{"777"}}, got)

	fav, ok := h.store.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, got, fav)
	assert.Nil(t, h.checkpoint(t, 7))

	// the session starts over from the saved record
	first, last := s.Name()
	assert.Equal(t, "Ann", first)
	assert.Equal(t, "Lane", last)
	assert.Empty(t, s.PendingDeletes())
	assert.False(t, s.InFlight())
}

func TestSave_RefetchFindsNothing(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.SetName("Ann", "Lane"))
	require.NoError(t, s.RemoveNumber(0))
	require.NoError(t, s.AddNumber("777"))

	h.fc.gone[7] = true
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrStaleContact)
	assert.True(t, s.Invalid())

	fav, _ := h.store.Lookup(7)
	assert.Equal(t, "Ann Lee", fav.Name)
	assert.Equal(t, []string{"555"}, fav.Numbers)
	assert.Nil(t, h.checkpoint(t, 7))

	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrInvalidSession)
	require.ErrorIs(t, s.AddNumber("1"), common.ErrInvalidSession)
}

func TestSave_IncompleteRecordLeavesStore(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.SetName("Ann", "Lane"))

	h.fc.mu.Lock()
	h.fc.contacts[7].Phones = nil
	h.fc.mu.Unlock()

	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrIncompleteRecord)

	fav, _ := h.store.Lookup(7)
	assert.Equal(t, "Ann Lee", fav.Name)
	cp := h.checkpoint(t, 7)
	require.NotNil(t, cp)
	assert.Equal(t, 4, cp.Step)
}

func TestSave_UnchangedNameSendsBothFields(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	h.fc.reset()

	require.NoError(t, s.SetNumber(0, "556"))
	got, err := h.editor.Save(ctx, s)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"update 7 first_name=Ann,last_name=Lee",
		"edit-phone 7 555->556",
		"get 7",
	}, h.fc.Calls())
	assert.Equal(t, []string{"556"}, got.Numbers)
}

func TestSave_ValidationFailsBeforeAnyCall(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	h.fc.reset()

	require.NoError(t, s.SetName("Ann@", "Lee"))
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrNameSpecialCharacters)
	require.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, s.SetName("Ann", "Lee"))
	require.NoError(t, s.AddNumber("12a"))
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrNumberNotNumeric)

	assert.Empty(t, h.fc.Calls())
	assert.Nil(t, h.checkpoint(t, 7))
}

func TestSave_DuplicateNameBeforeMutation(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	h.fc.seed(models.ContactRecord{ID: 8, FirstName: "Bob", LastName: "Ray", Phones: []models.Phone{}})
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	h.fc.reset()

	require.NoError(t, s.SetName("Bob", "Ray"))
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrDuplicateName)
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, []string{"find Bob Ray"}, h.fc.Calls())
}

func TestSave_PhoneAlreadyUsedStopsSaga(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	h.fc.seed(models.ContactRecord{ID: 8, FirstName: "Bob", LastName: "Ray",
		Phones: []models.Phone{{ID: intp(2), Number: "999"}}})
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	h.fc.reset()

	require.NoError(t, s.AddNumber("999"))
	require.NoError(t, s.SetNumber(0, "556"))
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrPhoneAlreadyUsed)

	assert.Equal(t, []string{
		"update 7 first_name=Ann,last_name=Lee",
		"add-phone 7 999",
	}, h.fc.Calls())

	cp := h.checkpoint(t, 7)
	require.NotNil(t, cp)
	assert.Equal(t, 2, cp.Step)
	assert.True(t, s.InFlight())
	require.ErrorIs(t, s.AddNumber("1"), common.ErrEditInProgress)
}

func TestSave_ResumeContinuesAtFailedStep(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.SetName("Ann", "Lane"))
	require.NoError(t, s.RemoveNumber(0))
	require.NoError(t, s.AddNumber("777"))
	require.NoError(t, s.AddNumber("778"))

	h.fc.failNext("add-phone", common.ErrNetwork)
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrNetwork)

	_, err = h.editor.Open(ctx, 7)
	require.ErrorIs(t, err, common.ErrEditInProgress)

	// a fresh session object, as after a restart
	resumed, err := h.editor.Resume(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), resumed.ID())
	assert.Equal(t, 2, resumed.Step())
	h.fc.reset()

	got, err := h.editor.Save(ctx, resumed)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"add-phone 7 777",
		"add-phone 7 778",
		"get 7",
	}, h.fc.Calls())
	assert.Equal(t, models.Contact{ID: 7, Name: "Ann Lane", Numbers: []string{"777", "778"}}, got)
	assert.Nil(t, h.checkpoint(t, 7))
}

func TestSave_RetrySkipsFinishedCalls(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.AddNumber("777"))
	require.NoError(t, s.AddNumber("778"))

	// first add goes through, second fails
	h.fc.mu.Lock()
	h.fc.contacts[8] = &models.ContactRecord{ID: 8, FirstName: "X", LastName: "Y",
		Phones: []models.Phone{{ID: intp(50), Number: "778"}}}
	h.fc.mu.Unlock()
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrPhoneAlreadyUsed)

	h.fc.mu.Lock()
	delete(h.fc.contacts, 8)
	h.fc.mu.Unlock()
	h.fc.reset()

	_, err = h.editor.Save(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"add-phone 7 778", "get 7"}, h.fc.Calls())
}

func TestResume_WithoutCheckpoint(t *testing.T) {
	h := setup(t)
	_, err := h.editor.Resume(context.Background(), 7)
	require.ErrorIs(t, err, common.ErrNoPendingEdit)
}

func TestAbandon_RevertsNewestFirst(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	h.fc.seed(models.ContactRecord{ID: 7, FirstName: "Ann", LastName: "Lee",
		Phones: []models.Phone{{ID: intp(1), Number: "555"}, {ID: intp(2), Number: "556"}}})

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.SetName("Ann", "Lane"))
	require.NoError(t, s.RemoveNumber(1))
	require.NoError(t, s.SetNumber(0, "550"))
	require.NoError(t, s.AddNumber("777"))

	h.fc.failNext("get", common.ErrNetwork)
	_, err = h.editor.Save(ctx, s)
	require.ErrorIs(t, err, common.ErrNetwork)
	h.fc.reset()

	require.NoError(t, h.editor.Abandon(ctx, s))
	assert.Equal(t, []string{
		"edit-phone 7 550->555",
		"delete-phone 7 777",
		"add-phone 7 556",
		"update 7 first_name=Ann,last_name=Lee",
	}, h.fc.Calls())

	rec, err := h.fc.GetContact(ctx, 7)
	require.NoError(t, err)
	c := rec.ToContact()
	assert.Equal(t, "Ann Lee", c.Name)
	assert.ElementsMatch(t, []string{"555", "556"}, c.Numbers)

	assert.True(t, s.Invalid())
	assert.Nil(t, h.checkpoint(t, 7))
}

func TestAbandon_FailedCompensationCanBeRetried(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.AddNumber("777"))
	require.NoError(t, s.AddNumber("778"))
	h.fc.failNext("get", common.ErrNetwork)
	_, err = h.editor.Save(ctx, s)
	require.Error(t, err)

	h.fc.failNext("delete-phone", common.ErrNetwork)
	require.ErrorIs(t, h.editor.Abandon(ctx, s), common.ErrNetwork)
	require.NotNil(t, h.checkpoint(t, 7))

	resumed, err := h.editor.Resume(ctx, 7)
	require.NoError(t, err)
	_, err = h.editor.Save(ctx, resumed)
	require.ErrorIs(t, err, common.ErrEditInProgress)

	h.fc.reset()
	require.NoError(t, h.editor.Abandon(ctx, resumed))
	assert.Equal(t, []string{
		"delete-phone 7 778",
		"delete-phone 7 777",
		"update 7 first_name=Ann,last_name=Lee",
	}, h.fc.Calls())
	assert.Nil(t, h.checkpoint(t, 7))
}

func TestAbandon_NothingApplied(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	ctx := context.Background()

	s, err := h.editor.Open(ctx, 7)
	require.NoError(t, err)
	h.fc.reset()

	require.NoError(t, h.editor.Abandon(ctx, s))
	assert.Empty(t, h.fc.Calls())
	assert.True(t, s.Invalid())
}

func TestOpen_MissingContact(t *testing.T) {
	h := setup(t)
	_, err := h.editor.Open(context.Background(), 99)
	require.ErrorIs(t, err, common.ErrStaleContact)
}

func TestAdd(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	got, err := h.editor.Add(ctx, "Cy", "Do", []string{"123", "456"})
	require.NoError(t, err)
	assert.Equal(t, "Cy Do", got.Name)
	assert.Equal(t, []string{"123", "456"}, got.Numbers)

	assert.Equal(t, []string{"find Cy Do", "create Cy Do [123 456]"}, h.fc.Calls())
	assert.Equal(t, []models.Contact{got}, h.store.Regular())
	assert.Equal(t, 1, h.store.Cursor())
}

func TestAdd_DuplicateNameNeverCreates(t *testing.T) {
	h := setup(t)
	h.seedAnn(t)
	h.fc.reset()

	_, err := h.editor.Add(context.Background(), "Ann", "Lee", []string{"1"})
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, []string{"find Ann Lee"}, h.fc.Calls())
}

func TestAdd_Validation(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	_, err := h.editor.Add(ctx, "Ann", "L@e", nil)
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = h.editor.Add(ctx, "Ann", "Lee", []string{"55a"})
	require.ErrorIs(t, err, common.ErrNumberNotNumeric)
	assert.Empty(t, h.fc.Calls())
}

func TestSession_RemoveNumber(t *testing.T) {
	rec := &models.ContactRecord{ID: 7, FirstName: "Ann", LastName: "Lee",
		Phones: []models.Phone{{ID: intp(1), Number: "555"}}}
	s := newSession(rec)

	require.NoError(t, s.AddNumber("777"))
	require.NoError(t, s.RemoveNumber(1))
	assert.Empty(t, s.PendingDeletes())

	require.NoError(t, s.SetNumber(0, "550"))
	require.NoError(t, s.RemoveNumber(0))
	assert.Equal(t, []string{"555"}, s.PendingDeletes())
	assert.Empty(t, s.Phones())

	require.Error(t, s.RemoveNumber(0))
	require.Error(t, s.SetNumber(3, "1"))
}

func TestPhoneEdits(t *testing.T) {
	loaded := []models.PhoneEntry{{ID: intp(1), Value: "555"}, {ID: intp(2), Value: "556"}}

	edits, err := phoneEdits(loaded, []models.PhoneEntry{
		{ID: intp(2), Value: "656"},
		{Value: "777"},
	})
	require.NoError(t, err)
	assert.Equal(t, []PhoneEdit{{ID: 2, Old: "556", New: "656"}}, edits)

	edits, err = phoneEdits(loaded, []models.PhoneEntry{{ID: intp(1), Value: "555"}})
	require.NoError(t, err)
	assert.Empty(t, edits)

	_, err = phoneEdits(loaded, []models.PhoneEntry{{ID: intp(1), Value: "1"}, {ID: intp(1), Value: "2"}})
	require.ErrorIs(t, err, common.ErrInconsistentEdit)

	_, err = phoneEdits(loaded, []models.PhoneEntry{{ID: intp(9), Value: "1"}})
	require.ErrorIs(t, err, common.ErrInconsistentEdit)
}
