package cache

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
)

// Repository persists the contact lists.
type Repository interface {
	// Load returns the contacts stored in slot, or an empty slice if the slot
	// has never been written.
	Load(ctx context.Context, slot string) ([]models.Contact, error)

	// Save overwrites slot with contacts.
	Save(ctx context.Context, slot string, contacts []models.Contact) error

	// SavePartition overwrites both list slots atomically.
	SavePartition(ctx context.Context, regular, favorite []models.Contact) error
}
