package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveCheckpoint(ctx context.Context, cp Checkpoint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saga_checkpoints (contact_id, session_id, step, state) VALUES (?, ?, ?, ?)
		ON CONFLICT(contact_id) DO UPDATE SET
			session_id = excluded.session_id,
			step = excluded.step,
			state = excluded.state,
			updated_at = CURRENT_TIMESTAMP
	`, cp.ContactID, cp.SessionID, cp.Step, string(cp.State))
	if err != nil {
		return fmt.Errorf("failed to save checkpoint[%d]: %w", cp.ContactID, err)
	}
	return nil
}

func (r *SQLiteRepository) LoadCheckpoint(ctx context.Context, contactID int) (*Checkpoint, error) {
	cp := &Checkpoint{ContactID: contactID}
	var state string
	err := r.db.QueryRowContext(ctx,
		`SELECT session_id, step, state FROM saga_checkpoints WHERE contact_id = ?`, contactID).
		Scan(&cp.SessionID, &cp.Step, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint[%d]: %w", contactID, err)
	}
	cp.State = []byte(state)
	return cp, nil
}

func (r *SQLiteRepository) DeleteCheckpoint(ctx context.Context, contactID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saga_checkpoints WHERE contact_id = ?`, contactID); err != nil {
		return fmt.Errorf("failed to delete checkpoint[%d]: %w", contactID, err)
	}
	return nil
}

func (r *SQLiteRepository) MarkPendingDelete(ctx context.Context, contactID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pending_deletes (contact_id) VALUES (?) ON CONFLICT(contact_id) DO NOTHING`, contactID)
	if err != nil {
		return fmt.Errorf("failed to mark pending delete[%d]: %w", contactID, err)
	}
	return nil
}

func (r *SQLiteRepository) ClearPendingDelete(ctx context.Context, contactID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_deletes WHERE contact_id = ?`, contactID); err != nil {
		return fmt.Errorf("failed to clear pending delete[%d]: %w", contactID, err)
	}
	return nil
}

func (r *SQLiteRepository) PendingDeletes(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT contact_id FROM pending_deletes ORDER BY created_at, contact_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deletes: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending delete: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending deletes: %w", err)
	}
	return ids, nil
}
