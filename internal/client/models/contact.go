// Package models holds the client-side data types: the Contact projection the
// lists are made of, the remote ContactRecord shape, and the PhoneEntry rows
// of an edit session.
package models

import (
	"strings"
	"time"
)

// Contact is the externally visible projection of a remote contact. It is the
// element type of both the regular and favorite lists and is what the local
// cache stores.
type Contact struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Numbers []string `json:"number"`
}

// Phone is a phone number row attached to a remote contact.
type Phone struct {
	ID     *int   `json:"id,omitempty"`
	Number string `json:"number"`
}

// ContactRecord is a contact as returned by the remote service.
type ContactRecord struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	Phones    []Phone   `json:"phones"`
}

// DisplayName joins first and last name the way the lists show them.
func DisplayName(first, last string) string {
	return first + " " + last
}

// ToContact builds the list projection of r.
func (r ContactRecord) ToContact() Contact {
	numbers := make([]string, 0, len(r.Phones))
	for _, p := range r.Phones {
		numbers = append(numbers, p.Number)
	}
	return Contact{ID: r.ID, Name: DisplayName(r.FirstName, r.LastName), Numbers: numbers}
}

// Complete reports whether every field needed for the projection is populated.
func (r ContactRecord) Complete() bool {
	return r.ID != 0 && r.FirstName != "" && r.LastName != "" && r.Phones != nil
}

// MatchesName reports whether the display name contains query, ignoring case.
func (c Contact) MatchesName(query string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(query))
}
