package models

// PhoneEntry is one phone row in an edit session. ID is nil for numbers added
// during the session that the server has not seen yet.
type PhoneEntry struct {
	ID    *int   `json:"id,omitempty"`
	Value string `json:"value"`
}

// Persisted reports whether the entry already exists server-side.
func (p PhoneEntry) Persisted() bool {
	return p.ID != nil
}

// EntriesFromPhones converts remote phone rows into edit-session entries.
func EntriesFromPhones(phones []Phone) []PhoneEntry {
	out := make([]PhoneEntry, 0, len(phones))
	for _, p := range phones {
		var id *int
		if p.ID != nil {
			v := *p.ID
			id = &v
		}
		out = append(out, PhoneEntry{ID: id, Value: p.Number})
	}
	return out
}

// ListParams are the arguments of a paginated contact query.
type ListParams struct {
	Limit   int
	Offset  int
	OrderBy string // column sorted descending, e.g. "created_at"
	Filter  string // case-insensitive name fragment; empty means no filter
}

// NameUpdate carries the name fields of an update-contact call. Nil fields are
// left unchanged server-side.
type NameUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}
