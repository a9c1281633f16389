package client

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
)

// Client is the remote contact service as seen by the services layer.
type Client interface {
	Close() error

	// ListContacts returns one page of contacts with their phone numbers.
	ListContacts(ctx context.Context, params models.ListParams) ([]models.ContactRecord, error)

	// GetContact looks a contact up by id. It returns nil, nil when the
	// contact does not exist.
	GetContact(ctx context.Context, id int) (*models.ContactRecord, error)

	// FindByName returns the contacts whose first and last name match exactly.
	FindByName(ctx context.Context, firstName, lastName string) ([]models.ContactRecord, error)

	// CreateContact inserts a contact together with its phone numbers.
	CreateContact(ctx context.Context, firstName, lastName string, numbers []string) (*models.ContactRecord, error)

	// UpdateContact sets the given name fields of contact id.
	UpdateContact(ctx context.Context, id int, update models.NameUpdate) error

	AddPhone(ctx context.Context, contactID int, number string) error

	// EditPhone replaces the phone identified by (contactID, oldNumber).
	EditPhone(ctx context.Context, contactID int, oldNumber, newNumber string) error

	// DeletePhone removes the phone identified by (contactID, number) and
	// reports the number of rows removed.
	DeletePhone(ctx context.Context, contactID int, number string) (int, error)

	// DeleteContact removes contact id. It returns nil, nil when there was
	// nothing to delete.
	DeleteContact(ctx context.Context, id int) (*models.ContactRecord, error)
}
