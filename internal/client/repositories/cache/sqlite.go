package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
)

// SQLiteRepository implements Repository on the cache table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context, slot string) ([]models.Contact, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM cache WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cache[%s]: %w", slot, err)
	}

	contacts := []models.Contact{}
	if err := json.Unmarshal([]byte(payload), &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode cache[%s]: %w", slot, err)
	}
	return contacts, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, slot string, contacts []models.Contact) error {
	return save(ctx, r.db, slot, contacts)
}

func (r *SQLiteRepository) SavePartition(ctx context.Context, regular, favorite []models.Contact) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := save(ctx, tx, common.SlotContacts, regular); err != nil {
			return err
		}
		return save(ctx, tx, common.SlotFavorites, favorite)
	})
}

func save(ctx context.Context, db dbx.DBTX, slot string, contacts []models.Contact) error {
	if contacts == nil {
		contacts = []models.Contact{}
	}
	payload, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to encode cache[%s]: %w", slot, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO cache (slot, payload) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, slot, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save cache[%s]: %w", slot, err)
	}
	return nil
}
