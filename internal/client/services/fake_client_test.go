package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

// fakeClient is an in-memory contact service. It records every call as a
// short string and can be told to fail the next call of a given operation.
type fakeClient struct {
	mu sync.Mutex

	contacts    map[int]*models.ContactRecord
	order       []int // newest first
	nextPhoneID int
	nextID      int

	calls []string
	fail  map[string]error

	// GetContact reports these ids as absent
	gone map[int]bool

	// when set, ListContacts signals listStarted and waits for listGate
	listGate    chan struct{}
	listStarted chan struct{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		contacts:    map[int]*models.ContactRecord{},
		nextPhoneID: 100,
		nextID:      1000,
		fail:        map[string]error{},
		gone:        map[int]bool{},
	}
}

func intp(v int) *int { return &v }

// seed stores rec as the newest contact.
func (f *fakeClient) seed(rec models.ContactRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := rec
	cp.Phones = slices.Clone(rec.Phones)
	f.contacts[rec.ID] = &cp
	f.order = append([]int{rec.ID}, f.order...)
}

func (f *fakeClient) failNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeClient) record(op, format string, args ...any) error {
	f.calls = append(f.calls, op+" "+fmt.Sprintf(format, args...))
	if err, ok := f.fail[op]; ok {
		delete(f.fail, op)
		return err
	}
	return nil
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeClient) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeClient) numberUsed(number string) bool {
	for _, c := range f.contacts {
		for _, p := range c.Phones {
			if p.Number == number {
				return true
			}
		}
	}
	return false
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) ListContacts(ctx context.Context, params models.ListParams) ([]models.ContactRecord, error) {
	if f.listGate != nil {
		select {
		case f.listStarted <- struct{}{}:
		default:
		}
		<-f.listGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list", "offset=%d limit=%d filter=%s", params.Offset, params.Limit, params.Filter); err != nil {
		return nil, err
	}

	var matched []models.ContactRecord
	for _, id := range f.order {
		c := f.contacts[id]
		name := strings.ToLower(c.FirstName + " " + c.LastName)
		if params.Filter != "" && !strings.Contains(name, strings.ToLower(params.Filter)) {
			continue
		}
		matched = append(matched, *c)
	}
	if params.Offset >= len(matched) {
		return []models.ContactRecord{}, nil
	}
	end := min(params.Offset+params.Limit, len(matched))
	return matched[params.Offset:end], nil
}

func (f *fakeClient) GetContact(ctx context.Context, id int) (*models.ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("get", "%d", id); err != nil {
		return nil, err
	}
	c, ok := f.contacts[id]
	if !ok || f.gone[id] {
		return nil, nil
	}
	cp := *c
	cp.Phones = slices.Clone(c.Phones)
	return &cp, nil
}

func (f *fakeClient) FindByName(ctx context.Context, firstName, lastName string) ([]models.ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("find", "%s %s", firstName, lastName); err != nil {
		return nil, err
	}
	var out []models.ContactRecord
	for _, id := range f.order {
		c := f.contacts[id]
		if c.FirstName == firstName && c.LastName == lastName {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateContact(ctx context.Context, firstName, lastName string, numbers []string) (*models.ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create", "%s %s %v", firstName, lastName, numbers); err != nil {
		return nil, err
	}
	for _, n := range numbers {
		if f.numberUsed(n) {
			return nil, common.ErrPhoneAlreadyUsed
		}
	}

	f.nextID++
	rec := &models.ContactRecord{ID: f.nextID, FirstName: firstName, LastName: lastName, Phones: []models.Phone{}}
	for _, n := range numbers {
		f.nextPhoneID++
		rec.Phones = append(rec.Phones, models.Phone{ID: intp(f.nextPhoneID), Number: n})
	}
	f.contacts[rec.ID] = rec
	f.order = append([]int{rec.ID}, f.order...)

	cp := *rec
	return &cp, nil
}

func (f *fakeClient) UpdateContact(ctx context.Context, id int, u models.NameUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var fields []string
	if u.FirstName != nil {
		fields = append(fields, "first_name="+*u.FirstName)
	}
	if u.LastName != nil {
		fields = append(fields, "last_name="+*u.LastName)
	}
	if err := f.record("update", "%d %s", id, strings.Join(fields, ",")); err != nil {
		return err
	}

	c, ok := f.contacts[id]
	if !ok {
		return common.ErrStaleContact
	}
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	return nil
}

func (f *fakeClient) AddPhone(ctx context.Context, contactID int, number string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("add-phone", "%d %s", contactID, number); err != nil {
		return err
	}
	if f.numberUsed(number) {
		return common.ErrPhoneAlreadyUsed
	}
	c, ok := f.contacts[contactID]
	if !ok {
		return common.ErrNetwork
	}
	f.nextPhoneID++
	c.Phones = append(c.Phones, models.Phone{ID: intp(f.nextPhoneID), Number: number})
	return nil
}

func (f *fakeClient) EditPhone(ctx context.Context, contactID int, oldNumber, newNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("edit-phone", "%d %s->%s", contactID, oldNumber, newNumber); err != nil {
		return err
	}
	if f.numberUsed(newNumber) {
		return common.ErrPhoneAlreadyUsed
	}
	c, ok := f.contacts[contactID]
	if !ok {
		return common.ErrInconsistentEdit
	}
	for i := range c.Phones {
		if c.Phones[i].Number == oldNumber {
			c.Phones[i].Number = newNumber
			return nil
		}
	}
	return common.ErrInconsistentEdit
}

func (f *fakeClient) DeletePhone(ctx context.Context, contactID int, number string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete-phone", "%d %s", contactID, number); err != nil {
		return 0, err
	}
	c, ok := f.contacts[contactID]
	if !ok {
		return 0, nil
	}
	before := len(c.Phones)
	c.Phones = slices.DeleteFunc(c.Phones, func(p models.Phone) bool { return p.Number == number })
	return before - len(c.Phones), nil
}

func (f *fakeClient) DeleteContact(ctx context.Context, id int) (*models.ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete-contact", "%d", id); err != nil {
		return nil, err
	}
	c, ok := f.contacts[id]
	if !ok {
		return nil, nil
	}
	delete(f.contacts, id)
	f.order = slices.DeleteFunc(f.order, func(x int) bool { return x == id })
	return c, nil
}
